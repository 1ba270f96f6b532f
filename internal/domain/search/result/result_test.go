package result

import "testing"

func TestNew(t *testing.T) {
	r := New("7", "Go", "plain", "<mark>go</mark>", "programming", []string{"go", "lang"}, 0.95)

	if r.ID() != "7" {
		t.Errorf("ID() = %q", r.ID())
	}
	if r.Title() != "Go" {
		t.Errorf("Title() = %q", r.Title())
	}
	if r.Content() != "plain" {
		t.Errorf("Content() = %q", r.Content())
	}
	if r.Highlighted() != "<mark>go</mark>" {
		t.Errorf("Highlighted() = %q", r.Highlighted())
	}
	if r.Category() != "programming" {
		t.Errorf("Category() = %q", r.Category())
	}
	if len(r.Tags()) != 2 || r.Tags()[0] != "go" {
		t.Errorf("Tags() = %v", r.Tags())
	}
	if r.Score() != 0.95 {
		t.Errorf("Score() = %f", r.Score())
	}
}

func TestDisplayContent(t *testing.T) {
	withHL := New("", "t", "raw", "hl", "c", nil, 0)
	if withHL.DisplayContent() != "hl" {
		t.Errorf("DisplayContent() = %q, want highlighted", withHL.DisplayContent())
	}

	noHL := New("", "t", "raw", "", "c", nil, 0)
	if noHL.DisplayContent() != "raw" {
		t.Errorf("DisplayContent() = %q, want raw", noHL.DisplayContent())
	}
}

func TestResponse_Empty(t *testing.T) {
	var resp Response
	if !resp.Empty() {
		t.Error("zero response should be empty")
	}
	resp.Results = []Result{New("", "t", "c", "", "x", nil, 1)}
	if resp.Empty() {
		t.Error("response with one hit should not be empty")
	}
}
