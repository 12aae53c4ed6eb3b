package reconcile

import (
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"testing"
)

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestDiff(t *testing.T) {
	tests := []struct {
		name        string
		desired     []string
		local       []string
		wantInstall []string
		wantDelete  []string
		wantKeep    []string
	}{
		{
			name:        "fresh install",
			desired:     []string{"b.jar", "a.jar"},
			wantInstall: []string{"a.jar", "b.jar"},
			wantDelete:  []string{},
			wantKeep:    []string{},
		},
		{
			name:        "update",
			desired:     []string{"jei-2.jar", "create.jar"},
			local:       []string{"jei-1.jar", "create.jar", "notes.txt"},
			wantInstall: []string{"jei-2.jar"},
			wantDelete:  []string{"/mods/jei-1.jar"},
			wantKeep:    []string{"create.jar"},
		},
		{
			name:        "nothing desired",
			local:       []string{"a.jar", "b.disabled"},
			wantInstall: []string{},
			wantDelete:  []string{"/mods/a.jar"},
			wantKeep:    []string{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := Diff(tt.desired, tt.local, "/mods")
			if !equal(plan.ToInstall, tt.wantInstall) {
				t.Errorf("ToInstall = %v, want %v", plan.ToInstall, tt.wantInstall)
			}
			if !equal(plan.ToDelete, tt.wantDelete) {
				t.Errorf("ToDelete = %v, want %v", plan.ToDelete, tt.wantDelete)
			}
			if !equal(plan.ToKeep, tt.wantKeep) {
				t.Errorf("ToKeep = %v, want %v", plan.ToKeep, tt.wantKeep)
			}
		})
	}
}

// random sets must always partition correctly
func TestDiff_Properties(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	pick := func() []string {
		names := []string{}
		for i := 0; i < 12; i++ {
			if rng.Intn(2) == 0 {
				ext := ".jar"
				if rng.Intn(4) == 0 {
					ext = ".txt"
				}
				names = append(names, strconv.Itoa(i)+ext)
			}
		}
		return names
	}

	for i := 0; i < 200; i++ {
		desired, local := pick(), pick()
		plan := Diff(desired, local, "/mods")

		in := func(list []string, s string) bool {
			for _, v := range list {
				if v == s {
					return true
				}
			}
			return false
		}

		if len(plan.ToInstall)+len(plan.ToKeep) != len(desired) {
			t.Fatalf("install+keep must cover desired: %v %v", desired, plan)
		}
		for _, name := range plan.ToKeep {
			if !in(local, name) || in(plan.ToInstall, name) {
				t.Fatalf("%s kept but not local or also installed", name)
			}
		}
		for _, path := range plan.ToDelete {
			name := filepath.Base(path)
			if in(desired, name) || !IsJar(name) {
				t.Fatalf("%s must not be deleted", name)
			}
		}
		// applying the plan leaves exactly the desired jars
		after := map[string]bool{}
		for _, name := range local {
			after[name] = true
		}
		for _, path := range plan.ToDelete {
			delete(after, filepath.Base(path))
		}
		for _, name := range plan.ToInstall {
			after[name] = true
		}
		for name := range after {
			if IsJar(name) && !in(desired, name) {
				t.Fatalf("%s left over after applying the plan", name)
			}
		}
		replan := Diff(desired, keys(after), "/mods")
		if !replan.Empty() {
			t.Fatal("expected an empty plan after applying the plan")
		}
	}
}

func keys(m map[string]bool) []string {
	out := []string{}
	for k := range m {
		out = append(out, k)
	}
	return out
}

func TestPlanDir(t *testing.T) {
	root := t.TempDir()
	modsDir := filepath.Join(root, "mods")

	// missing directory gets created
	plan, err := PlanDir([]string{"a.jar"}, modsDir)
	if err != nil {
		t.Fatal(err)
	}
	if !equal(plan.ToInstall, []string{"a.jar"}) {
		t.Fatalf("unexpected plan %+v", plan)
	}

	os.WriteFile(filepath.Join(modsDir, "a.jar"), []byte("a"), 0o644)
	os.WriteFile(filepath.Join(modsDir, "old.jar"), []byte("o"), 0o644)
	os.Mkdir(filepath.Join(modsDir, "folder.jar"), 0o755)

	plan, err = PlanDir([]string{"a.jar"}, modsDir)
	if err != nil {
		t.Fatal(err)
	}
	if !equal(plan.ToKeep, []string{"a.jar"}) {
		t.Fatalf("unexpected keep %v", plan.ToKeep)
	}
	if !equal(plan.ToDelete, []string{filepath.Join(modsDir, "old.jar")}) {
		t.Fatalf("expected only old.jar to be deleted, got %v", plan.ToDelete)
	}
}
