package commands

import "testing"

func TestAll_MenuOrder(t *testing.T) {
	all := All()
	if len(all) != 10 {
		t.Fatalf("expected 10 commands, got %d", len(all))
	}
	if all[0].Name != "/novo_agente" || all[len(all)-1].Name != "/rollback" {
		t.Fatalf("unexpected order: first=%s last=%s", all[0].Name, all[len(all)-1].Name)
	}

	all[0].Name = "/mutated"
	if All()[0].Name != "/novo_agente" {
		t.Fatal("All must return a copy")
	}
}

func TestFilter(t *testing.T) {
	tests := []struct {
		prefix string
		want   int
	}{
		{"", 10},
		{"/", 10},
		{"/i", 2},
		{"ind", 1},
		{"/NOVO", 1},
		{"/xyz", 0},
	}
	for _, tt := range tests {
		if got := Filter(tt.prefix); len(got) != tt.want {
			t.Errorf("Filter(%q) = %d commands, want %d", tt.prefix, len(got), tt.want)
		}
	}
}

func TestLookup(t *testing.T) {
	c, ok := Lookup("deploy")
	if !ok || c.Category != CategoryDeploy {
		t.Fatalf("expected deploy command, got %#v ok=%v", c, ok)
	}
	if _, ok := Lookup("/nope"); ok {
		t.Fatal("unexpected command")
	}
}

func TestByCategory(t *testing.T) {
	if got := ByCategory("rag"); len(got) != 2 {
		t.Errorf("lowercase category: %v", got)
	}
	if got := ByCategory(CategoryRAG); len(got) != 2 {
		t.Fatalf("expected 2 RAG commands, got %d", len(got))
	}
	if got := ByCategory(CategoryDeploy); len(got) != 2 || got[1].Name != "/rollback" {
		t.Fatalf("unexpected deploy commands: %#v", got)
	}
}

func TestIsSlash(t *testing.T) {
	if !IsSlash("  /novo") || IsSlash("novo") || IsSlash("") {
		t.Fatal("IsSlash misclassified input")
	}
}
