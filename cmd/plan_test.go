package cmd

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/evergales/tinkaros/internals/reconcile"
	"github.com/evergales/tinkaros/pkg/modpack"
)

func testPlanOutput() planOutput {
	return planOutput{
		Modpack: "ahms",
		Version: "1.2.0",
		Policy:  "pinned",
		Root:    "/games/ahms",
		Plan: reconcile.Plan{
			ToInstall: []string{"create.jar"},
			ToDelete:  []string{"/games/ahms/mods/old.jar"},
			ToKeep:    []string{"jei.jar"},
		},
		Files: []modpack.ResolvedFile{
			{Filename: "create.jar", DownloadURL: "https://cdn.modrinth.com/create.jar", Source: modpack.Modrinth},
			{Filename: "jei.jar", DownloadURL: "https://edge.forgecdn.net/jei.jar", Source: modpack.CurseForge},
		},
	}
}

func TestRenderPlan_JSON(t *testing.T) {
	buf := &bytes.Buffer{}
	if err := renderPlan(buf, "json", testPlanOutput()); err != nil {
		t.Fatal(err)
	}

	var decoded struct {
		Modpack string `json:"modpack"`
		Plan    struct {
			ToInstall []string `json:"toInstall"`
		} `json:"plan"`
		Files []struct {
			Source string `json:"source"`
		} `json:"files"`
	}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatal(err)
	}
	if decoded.Modpack != "ahms" || len(decoded.Files) != 2 {
		t.Errorf("unexpected output %s", buf.String())
	}
	if decoded.Files[1].Source != "curseforge" {
		t.Errorf("expected registry name as source, got %q", decoded.Files[1].Source)
	}
}

func TestRenderPlan_YAML(t *testing.T) {
	buf := &bytes.Buffer{}
	if err := renderPlan(buf, "yaml", testPlanOutput()); err != nil {
		t.Fatal(err)
	}

	decoded := map[string]interface{}{}
	if err := yaml.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatal(err)
	}
	if decoded["version"] != "1.2.0" {
		t.Errorf("unexpected output %s", buf.String())
	}
	if !strings.Contains(buf.String(), "source: modrinth") {
		t.Errorf("expected registry name as source in %s", buf.String())
	}
}

func TestRenderPlan_Table(t *testing.T) {
	buf := &bytes.Buffer{}
	if err := renderPlan(buf, "table", testPlanOutput()); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"create.jar", "old.jar", "1 to install, 1 to remove, 1 unchanged"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("expected %q in %s", want, buf.String())
		}
	}

	buf.Reset()
	empty := testPlanOutput()
	empty.Plan = reconcile.Plan{ToKeep: []string{"jei.jar"}}
	renderPlan(buf, "table", empty)
	if !strings.Contains(buf.String(), "Everything is up to date.") {
		t.Errorf("expected up to date message, got %s", buf.String())
	}
}
