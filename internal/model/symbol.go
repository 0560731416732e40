package model

// Symbol символ в ячейке поля. Атрибуты необязательные: нулевое значение = атрибута нет.
type Symbol struct {
	Name       string  `json:"name"`
	Multiplier int     `json:"multiplier,omitempty"`
	Prize      float64 `json:"prize,omitempty"`
}

// Board игровое поле [барабан][ряд]
type Board [][]Symbol

// NewBoard создает поле с заданным количеством рядов на каждом барабане
func NewBoard(rows []int) Board {
	b := make(Board, len(rows))
	for r, n := range rows {
		b[r] = make([]Symbol, n)
	}
	return b
}

// Clone глубокая копия поля (для событий)
func (b Board) Clone() Board {
	out := make(Board, len(b))
	for r := range b {
		out[r] = append([]Symbol(nil), b[r]...)
	}
	return out
}

// Cells общее количество ячеек
func (b Board) Cells() int {
	n := 0
	for _, reel := range b {
		n += len(reel)
	}
	return n
}

// Count считает ячейки с символом name
func (b Board) Count(name string) int {
	n := 0
	for _, reel := range b {
		for _, s := range reel {
			if s.Name == name {
				n++
			}
		}
	}
	return n
}

// Position координата ячейки
type Position struct {
	Reel int `json:"reel"`
	Row  int `json:"row"`
}
