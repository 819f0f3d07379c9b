// Package dal importa todos los adapters para auto-registro.
//
// Uso:
//
//	import _ "github.com/dropDatabas3/alquiler/internal/store/adapters/dal"
package dal

import (
	_ "github.com/dropDatabas3/alquiler/internal/store/adapters/memory"
	_ "github.com/dropDatabas3/alquiler/internal/store/adapters/mongo"
)
