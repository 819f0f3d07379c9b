// Package logger expone un logger Zap global con loggers "scoped" por request.
//
// Inicialización (una vez, en main):
//
//	logger.Init(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level, ServiceName: "alquiler"})
//	defer logger.Sync()
//
// En controllers y services:
//
//	log := logger.From(ctx).With(logger.Layer("service"), logger.Op("Apartments.Create"))
//	log.Info("apartment created", logger.EntityID(id))
package logger
