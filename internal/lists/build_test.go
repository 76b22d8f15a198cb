package lists_test

import (
	"testing"

	"sarpipe/internal/lists"
	"sarpipe/internal/sensors"
)

func ersSensor(t *testing.T) sensors.Sensor {
	t.Helper()
	sensor, err := sensors.Lookup("ERS")
	if err != nil {
		t.Fatalf("sensors.Lookup: %v", err)
	}
	return sensor
}

func TestBuildSceneListDedupesAndSorts(t *testing.T) {
	entries := []string{
		"20150101.tar.gz",
		"20150115.tar.gz",
		"20150101.tar.gz",
	}
	scenes := lists.BuildSceneList(entries, ersSensor(t), "")
	if len(scenes) != 2 {
		t.Fatalf("expected 2 scenes, got %d", len(scenes))
	}
	if scenes[0].Date != "20150101" || scenes[1].Date != "20150115" {
		t.Fatalf("unexpected scene order: %+v", scenes)
	}
}

func TestBuildSceneListSkipsNonDateEntries(t *testing.T) {
	entries := []string{
		"20150115.tar.gz",
		"README.txt",
		"checksums.md5",
		"20150101.tar.gz",
	}
	scenes := lists.BuildSceneList(entries, ersSensor(t), "")
	if len(scenes) != 2 {
		t.Fatalf("expected non-date entries to be skipped, got %+v", scenes)
	}
}

func TestBuildSceneListCarriesFrame(t *testing.T) {
	scenes := lists.BuildSceneList([]string{"20150101.tar.gz"}, ersSensor(t), "F20")
	if len(scenes) != 1 {
		t.Fatalf("expected 1 scene, got %d", len(scenes))
	}
	if scenes[0].Identifier() != "20150101_F20" {
		t.Fatalf("unexpected identifier: %q", scenes[0].Identifier())
	}
}

func TestBuildSlaveListExcludesReference(t *testing.T) {
	scenes := []lists.Scene{
		{Date: "20150101"},
		{Date: "20150115"},
		{Date: "20150129"},
	}
	slaves := lists.BuildSlaveList(scenes, "20150115")
	if len(slaves) != 2 {
		t.Fatalf("expected 2 slaves, got %d", len(slaves))
	}
	for _, slave := range slaves {
		if slave.Date == "20150115" {
			t.Fatal("reference scene leaked into slave list")
		}
	}
}

func TestBuildPairsAllVersusReference(t *testing.T) {
	scenes := []lists.Scene{
		{Date: "20150101"},
		{Date: "20150115"},
		{Date: "20150129"},
	}
	pairs := lists.BuildPairs(scenes, "20150101")
	if len(pairs) != 2 {
		t.Fatalf("expected one pair per slave, got %d", len(pairs))
	}
	for _, pair := range pairs {
		if pair.Reference.Date != "20150101" {
			t.Fatalf("pair %s does not use the reference scene", pair.Identifier())
		}
	}
	if pairs[0].Identifier() != "20150101,20150115" {
		t.Fatalf("unexpected first pair: %q", pairs[0].Identifier())
	}
	if pairs[1].Identifier() != "20150101,20150129" {
		t.Fatalf("unexpected second pair: %q", pairs[1].Identifier())
	}
}

func TestBuildPairsWithoutReferenceInList(t *testing.T) {
	scenes := []lists.Scene{{Date: "20150115"}}
	if pairs := lists.BuildPairs(scenes, "20150101"); pairs != nil {
		t.Fatalf("expected nil pairs when the reference is absent, got %+v", pairs)
	}
}

func TestMergeScenesIsIdempotent(t *testing.T) {
	base := []lists.Scene{
		{Date: "20150101"},
		{Date: "20150115"},
	}
	additional := []lists.Scene{
		{Date: "20150115"},
		{Date: "20150212"},
	}
	merged := lists.MergeScenes(base, additional)
	if len(merged) != 3 {
		t.Fatalf("expected 3 merged scenes, got %d", len(merged))
	}

	again := lists.MergeScenes(merged, additional)
	if len(again) != len(merged) {
		t.Fatalf("repeated merge changed the list: %d vs %d", len(again), len(merged))
	}
	for i := range merged {
		if merged[i] != again[i] {
			t.Fatalf("repeated merge reordered entries at %d: %+v vs %+v", i, merged[i], again[i])
		}
	}
}

func TestMergeScenesResorts(t *testing.T) {
	merged := lists.MergeScenes(
		[]lists.Scene{{Date: "20150115"}},
		[]lists.Scene{{Date: "20150101"}},
	)
	if merged[0].Date != "20150101" {
		t.Fatalf("expected chronological order after merge, got %+v", merged)
	}
}

func TestNewScenesReportsOnlyAdditions(t *testing.T) {
	base := []lists.Scene{{Date: "20150101"}, {Date: "20150115"}}
	updated := []lists.Scene{{Date: "20150101"}, {Date: "20150115"}, {Date: "20150212"}}
	added := lists.NewScenes(base, updated)
	if len(added) != 1 || added[0].Date != "20150212" {
		t.Fatalf("unexpected additions: %+v", added)
	}
	if again := lists.NewScenes(updated, updated); len(again) != 0 {
		t.Fatalf("expected no additions for identical lists, got %+v", again)
	}
}

func TestParseSceneRoundTrip(t *testing.T) {
	for _, value := range []string{"20150101", "20150101_F20"} {
		scene, err := lists.ParseScene(value)
		if err != nil {
			t.Fatalf("ParseScene(%s) returned error: %v", value, err)
		}
		if scene.Identifier() != value {
			t.Fatalf("round trip mismatch: %q -> %q", value, scene.Identifier())
		}
	}
}

func TestParseSceneRejectsBadDates(t *testing.T) {
	for _, value := range []string{"", "2015", "2015-01-01", "notadate_F20"} {
		if _, err := lists.ParseScene(value); err == nil {
			t.Fatalf("expected error for %q", value)
		}
	}
}

func TestParsePairRoundTrip(t *testing.T) {
	pair, err := lists.ParsePair("20150101,20150115")
	if err != nil {
		t.Fatalf("ParsePair returned error: %v", err)
	}
	if pair.Identifier() != "20150101,20150115" {
		t.Fatalf("round trip mismatch: %q", pair.Identifier())
	}
	if pair.Name() != "20150101-20150115" {
		t.Fatalf("unexpected pair name: %q", pair.Name())
	}
}

func TestParsePairRejectsMissingSlave(t *testing.T) {
	if _, err := lists.ParsePair("20150101"); err == nil {
		t.Fatal("expected error for pair without a slave scene")
	}
}
