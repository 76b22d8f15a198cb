package jobs

import (
	"fmt"
	"strings"
)

// renderScript produces the job script artifact: declarative PBS resource
// headers followed by the body's command lines.
func renderScript(d Descriptor, project, mailList string) string {
	var b strings.Builder
	b.WriteString("#!/bin/bash\n")
	fmt.Fprintf(&b, "#PBS -P %s\n", project)
	fmt.Fprintf(&b, "#PBS -q %s\n", d.Resources.Queue)
	fmt.Fprintf(&b, "#PBS -l walltime=%d:00:00,mem=%dGB,ncpus=%d\n",
		d.Resources.WallHours, d.Resources.MemGB, d.Resources.NCPUs)
	b.WriteString("#PBS -l wd\n")
	b.WriteString("#PBS -j oe\n")
	b.WriteString("#PBS -m e\n")
	if strings.TrimSpace(mailList) != "" {
		fmt.Fprintf(&b, "#PBS -M %s\n", mailList)
	}
	b.WriteString("\n")
	for _, line := range d.Body {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}
