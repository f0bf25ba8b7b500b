// Package web renders the HTML views from templates embedded in the
// binary.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"webcheckers/models"
)

//go:embed templates/*.html
var templateFS embed.FS

type Views struct {
	templates *template.Template
}

func NewViews() (*Views, error) {
	templates, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse view templates: %w", err)
	}
	return &Views{templates: templates}, nil
}

// Render writes the named view with the given view model.
func (v *Views) Render(w http.ResponseWriter, name string, data map[string]any) error {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	return v.templates.ExecuteTemplate(w, name, data)
}

// Square is one board cell of the rendered game view.
type Square struct {
	Pos   string
	Dark  bool
	Piece *models.Piece
}

// BoardRows lays the grid out for the template, row A at the top.
func BoardRows(grid map[string]*models.Piece) [][]Square {
	rows := make([][]Square, 0, 8)
	for row := 'A'; row <= 'H'; row++ {
		cells := make([]Square, 0, 8)
		for col := 1; col <= 8; col++ {
			pos := fmt.Sprintf("%c%d", row, col)
			cells = append(cells, Square{
				Pos:   pos,
				Dark:  (int(row-'A')+col)%2 == 1,
				Piece: grid[pos],
			})
		}
		rows = append(rows, cells)
	}
	return rows
}
