package lists_test

import (
	"errors"
	"os"
	"testing"

	"sarpipe/internal/lists"
	"sarpipe/internal/logging"
	"sarpipe/internal/testsupport"
)

func s1Archive(date string) string {
	return "S1A_IW_SLC__1SDV_" + date + "T120000_" + date + "T120027_004081_004EF5_A1B2.zip"
}

func TestRefreshSceneListFromArchive(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	testsupport.SeedArchive(t, cfg,
		s1Archive("20150115"),
		s1Archive("20150101"),
		"manifest.txt",
	)
	manager, err := lists.NewManager(cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("lists.NewManager: %v", err)
	}

	scenes, err := manager.RefreshSceneList()
	if err != nil {
		t.Fatalf("RefreshSceneList returned error: %v", err)
	}
	if len(scenes) != 2 {
		t.Fatalf("expected 2 scenes, got %d", len(scenes))
	}
	if scenes[0].Date != "20150101" || scenes[1].Date != "20150115" {
		t.Fatalf("unexpected scene order: %+v", scenes)
	}

	data, err := os.ReadFile(manager.ScenesPath())
	if err != nil {
		t.Fatalf("read scene list: %v", err)
	}
	if string(data) != "20150101\n20150115\n" {
		t.Fatalf("unexpected scene list contents: %q", string(data))
	}
}

func TestRefreshSceneListMissingArchive(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	if err := os.RemoveAll(cfg.Paths.RawDataDir); err != nil {
		t.Fatalf("remove raw data dir: %v", err)
	}
	manager, err := lists.NewManager(cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("lists.NewManager: %v", err)
	}

	if _, err := manager.RefreshSceneList(); !errors.Is(err, lists.ErrMissingInput) {
		t.Fatalf("expected ErrMissingInput, got %v", err)
	}
}

func TestRefreshSceneListKeepsExistingEntries(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	testsupport.SeedArchive(t, cfg, s1Archive("20150115"))
	manager, err := lists.NewManager(cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("lists.NewManager: %v", err)
	}

	if err := lists.WriteLines(manager.ScenesPath(), []string{"20150101"}); err != nil {
		t.Fatalf("seed scene list: %v", err)
	}

	scenes, err := manager.RefreshSceneList()
	if err != nil {
		t.Fatalf("RefreshSceneList returned error: %v", err)
	}
	if len(scenes) != 2 {
		t.Fatalf("expected archive refresh to keep listed scene, got %+v", scenes)
	}
	if scenes[0].Date != "20150101" {
		t.Fatalf("expected existing scene retained first, got %+v", scenes)
	}
}

func TestRefreshSceneListIsIdempotent(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	testsupport.SeedArchive(t, cfg, s1Archive("20150101"), s1Archive("20150115"))
	manager, err := lists.NewManager(cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("lists.NewManager: %v", err)
	}

	if _, err := manager.RefreshSceneList(); err != nil {
		t.Fatalf("first refresh: %v", err)
	}
	first, err := os.ReadFile(manager.ScenesPath())
	if err != nil {
		t.Fatalf("read scene list: %v", err)
	}

	if _, err := manager.RefreshSceneList(); err != nil {
		t.Fatalf("second refresh: %v", err)
	}
	second, err := os.ReadFile(manager.ScenesPath())
	if err != nil {
		t.Fatalf("reread scene list: %v", err)
	}
	if string(first) != string(second) {
		t.Fatal("repeated refresh changed the scene list file")
	}
}

func TestAppendScenesReportsAdditionsOnce(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	testsupport.SeedArchive(t, cfg, s1Archive("20150101"))
	manager, err := lists.NewManager(cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("lists.NewManager: %v", err)
	}
	if _, err := manager.RefreshSceneList(); err != nil {
		t.Fatalf("RefreshSceneList: %v", err)
	}

	additional := []lists.Scene{{Date: "20150212"}}
	merged, added, err := manager.AppendScenes(additional)
	if err != nil {
		t.Fatalf("AppendScenes returned error: %v", err)
	}
	if len(merged) != 2 || len(added) != 1 {
		t.Fatalf("unexpected merge result: merged=%d added=%d", len(merged), len(added))
	}

	_, added, err = manager.AppendScenes(additional)
	if err != nil {
		t.Fatalf("repeated AppendScenes returned error: %v", err)
	}
	if len(added) != 0 {
		t.Fatalf("expected no additions on repeat, got %+v", added)
	}
}

func TestRefreshSlaveAndPairLists(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	testsupport.SeedArchive(t, cfg,
		s1Archive("20150101"),
		s1Archive("20150115"),
		s1Archive("20150212"),
	)
	manager, err := lists.NewManager(cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("lists.NewManager: %v", err)
	}
	if _, err := manager.RefreshSceneList(); err != nil {
		t.Fatalf("RefreshSceneList: %v", err)
	}

	slaves, err := manager.RefreshSlaveList()
	if err != nil {
		t.Fatalf("RefreshSlaveList returned error: %v", err)
	}
	if len(slaves) != 2 {
		t.Fatalf("expected 2 slaves, got %+v", slaves)
	}

	pairs, err := manager.RefreshPairList()
	if err != nil {
		t.Fatalf("RefreshPairList returned error: %v", err)
	}
	if len(pairs) != 2 {
		t.Fatalf("expected 2 pairs, got %+v", pairs)
	}

	reread, err := manager.Pairs()
	if err != nil {
		t.Fatalf("Pairs returned error: %v", err)
	}
	for i := range pairs {
		if pairs[i] != reread[i] {
			t.Fatalf("pair list did not round trip at %d: %+v vs %+v", i, pairs[i], reread[i])
		}
	}
}

func TestRefreshPairListMasterNotInSceneList(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	testsupport.SeedArchive(t, cfg, s1Archive("20150115"))
	manager, err := lists.NewManager(cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("lists.NewManager: %v", err)
	}
	if _, err := manager.RefreshSceneList(); err != nil {
		t.Fatalf("RefreshSceneList: %v", err)
	}

	if _, err := manager.RefreshPairList(); !errors.Is(err, lists.ErrMissingInput) {
		t.Fatalf("expected ErrMissingInput for absent master scene, got %v", err)
	}
}
