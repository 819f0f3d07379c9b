package repository

const (
	// DefaultLimit es el tamaño de página cuando el caller no envía limit.
	DefaultLimit = 10
	// MaxLimit es el tope absoluto de cualquier listado o reporte.
	MaxLimit = 100
)

// Page acota cualquier listado: ningún query se ejecuta sin límite.
type Page struct {
	Skip  int
	Limit int
}

// NewPage valida skip/limit y aplica default y tope.
// maxLimit <= 0 usa MaxLimit.
func NewPage(skip, limit, maxLimit int) (Page, error) {
	if maxLimit <= 0 || maxLimit > MaxLimit {
		maxLimit = MaxLimit
	}
	if skip < 0 {
		return Page{}, Invalid("skip", "must be >= 0")
	}
	if limit < 0 {
		return Page{}, Invalid("limit", "must be >= 0")
	}
	if limit == 0 {
		limit = DefaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return Page{Skip: skip, Limit: limit}, nil
}

// DefaultPage es la primera página con el tamaño por defecto.
func DefaultPage() Page { return Page{Limit: DefaultLimit} }

// Bounded devuelve la página con el límite forzado a un valor válido.
// Los adapters la usan para no confiar en un Page construido a mano.
func (p Page) Bounded() Page {
	if p.Skip < 0 {
		p.Skip = 0
	}
	if p.Limit <= 0 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	return p
}
