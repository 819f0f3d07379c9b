// Package repository define los registros de dominio y los contratos de
// persistencia, independientes del almacenamiento subyacente.
//
// Las implementaciones viven en internal/store/adapters/:
//
//	┌───────────────────────────────────────────────┐
//	│        services / integrity / reports          │
//	└───────────────────────────────────────────────┘
//	                       │
//	                       ▼
//	┌───────────────────────────────────────────────┐
//	│     domain/repository (interfaces + records)   │
//	└───────────────────────────────────────────────┘
//	                       │
//	            ┌──────────┴──────────┐
//	            ▼                     ▼
//	    ┌──────────────┐      ┌──────────────┐
//	    │ adapters/    │      │ adapters/    │
//	    │   mongo      │      │   memory     │
//	    └──────────────┘      └──────────────┘
//
// Convenciones:
//   - Context siempre es el primer parámetro.
//   - Los IDs son la forma string canónica del identificador del store.
//   - Un registro inexistente se reporta como ErrNotFound; una falla del
//     store como ErrUnavailable.
package repository
