package logger

import (
	"time"

	"go.uber.org/zap"
)

// HTTP

func RequestID(v string) zap.Field       { return zap.String("request_id", v) }
func Method(v string) zap.Field          { return zap.String("method", v) }
func Path(v string) zap.Field            { return zap.String("path", v) }
func Status(v int) zap.Field             { return zap.Int("status", v) }
func Duration(v time.Duration) zap.Field { return zap.Duration("duration", v) }
func ClientIP(v string) zap.Field        { return zap.String("client_ip", v) }
func UserAgent(v string) zap.Field       { return zap.String("user_agent", v) }
func Bytes(v int) zap.Field              { return zap.Int("bytes", v) }

// Dominio

func UserID(v string) zap.Field      { return zap.String("user_id", v) }
func EntityID(v string) zap.Field    { return zap.String("entity_id", v) }
func Entity(v string) zap.Field      { return zap.String("entity", v) }
func ApartmentID(v string) zap.Field { return zap.String("apartment_id", v) }
func ContractID(v string) zap.Field  { return zap.String("contract_id", v) }
func Action(v string) zap.Field      { return zap.String("action", v) }
func Count(v int64) zap.Field        { return zap.Int64("count", v) }

// Estructura

// Layer identifica la capa (controller, service, repo, adapter).
func Layer(v string) zap.Field { return zap.String("layer", v) }

// Op identifica la operación, ej: "Contracts.Delete".
func Op(v string) zap.Field { return zap.String("op", v) }

// Component identifica el subsistema (integrity, reports, cache...).
func Component(v string) zap.Field { return zap.String("component", v) }

// Err agrega un error; nil se ignora.
func Err(err error) zap.Field {
	if err == nil {
		return zap.Skip()
	}
	return zap.Error(err)
}

// Field es el tipo de campo estructurado.
type Field = zap.Field

// Re-exports para no importar zap en cada archivo.
var (
	String = zap.String
	Int    = zap.Int
	Int64  = zap.Int64
	Bool   = zap.Bool
	Any    = zap.Any
)
