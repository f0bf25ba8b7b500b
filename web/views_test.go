package web

import (
	"net/http/httptest"
	"strings"
	"testing"

	"webcheckers/models"
)

func TestBoardRows(t *testing.T) {
	grid := map[string]*models.Piece{
		"C3": {Type: "b", PieceID: "p1"},
	}
	rows := BoardRows(grid)

	if len(rows) != 8 {
		t.Fatalf("expected 8 rows, got %d", len(rows))
	}
	for i, row := range rows {
		if len(row) != 8 {
			t.Fatalf("expected 8 cells in row %d, got %d", i, len(row))
		}
	}
	if rows[0][0].Pos != "A1" || rows[7][7].Pos != "H8" {
		t.Errorf("unexpected corner positions %q and %q", rows[0][0].Pos, rows[7][7].Pos)
	}
	if !rows[0][0].Dark {
		t.Error("expected A1 to be dark")
	}
	if rows[0][1].Dark {
		t.Error("expected A2 to be light")
	}
	if got := rows[2][2].Piece; got == nil || got.PieceID != "p1" {
		t.Errorf("expected the piece on C3, got %+v", got)
	}
	if rows[2][3].Piece != nil {
		t.Error("expected C4 to be empty")
	}
}

func TestRender(t *testing.T) {
	views, err := NewViews()
	if err != nil {
		t.Fatalf("failed to load views: %v", err)
	}

	rec := httptest.NewRecorder()
	err = views.Render(rec, "home.html", map[string]any{
		"Title":        "Home",
		"TotalPlayers": 0,
	})
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("unexpected content type %q", ct)
	}
	if !strings.Contains(rec.Body.String(), "WebCheckers") {
		t.Error("expected the rendered page to contain the title")
	}

	if err := views.Render(httptest.NewRecorder(), "missing.html", nil); err == nil {
		t.Error("expected an error for an unknown template")
	}
}
