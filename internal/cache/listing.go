package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// Listing cachea páginas de un listado público bajo una generación. Cualquier
// escritura sobre la entidad llama Bump y las páginas viejas quedan
// inalcanzables hasta que expiran.
type Listing struct {
	c    Client
	name string
	ttl  time.Duration
}

func NewListing(c Client, name string, ttl time.Duration) *Listing {
	return &Listing{c: c, name: name, ttl: ttl}
}

func (l *Listing) genKey() string { return l.name + ":gen" }

func (l *Listing) generation(ctx context.Context) (string, error) {
	g, err := l.c.Get(ctx, l.genKey())
	if IsNotFound(err) {
		return "0", nil
	}
	return g, err
}

func (l *Listing) pageKey(gen, variant string) string {
	return fmt.Sprintf("%s:%s:%s", l.name, gen, variant)
}

// Load decodifica la página cacheada en dst. Devuelve la generación leída,
// que el caller pasa a Store tras un miss. gen vacío = cache no disponible.
func (l *Listing) Load(ctx context.Context, variant string, dst any) (gen string, hit bool) {
	if l == nil || l.c == nil {
		return "", false
	}
	gen, err := l.generation(ctx)
	if err != nil {
		return "", false
	}
	raw, err := l.c.Get(ctx, l.pageKey(gen, variant))
	if err != nil {
		return gen, false
	}
	return gen, json.Unmarshal([]byte(raw), dst) == nil
}

// Store guarda la página bajo gen, la generación observada por Load antes de
// leer el store. Si hubo un Bump entremedio la página queda inalcanzable.
func (l *Listing) Store(ctx context.Context, gen, variant string, v any) error {
	if l == nil || l.c == nil || gen == "" {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return l.c.Set(ctx, l.pageKey(gen, variant), string(b), l.ttl)
}

// Bump invalida todas las páginas del listado.
func (l *Listing) Bump(ctx context.Context) (int64, error) {
	if l == nil || l.c == nil {
		return 0, nil
	}
	n, err := l.c.Incr(ctx, l.genKey())
	if err != nil {
		return 0, err
	}
	return n, nil
}

// Variant arma la clave de variante de una página.
func Variant(parts ...any) string {
	s := ""
	for i, p := range parts {
		if i > 0 {
			s += "|"
		}
		switch v := p.(type) {
		case int:
			s += strconv.Itoa(v)
		case nil:
			s += "-"
		default:
			s += fmt.Sprint(v)
		}
	}
	return s
}
