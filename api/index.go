package handler

import (
	"net/http"
	"sparkle/config"
	"sparkle/di"
	"sparkle/shared/logger"
	"sync"
)

var (
	handler     http.Handler
	handlerOnce sync.Once
)

// Handler is the serverless entry point. The injector runs once per warm instance.
func Handler(w http.ResponseWriter, r *http.Request) {
	r.RequestURI = r.URL.String()

	handlerOnce.Do(func() {
		cfg := config.Get()

		logger.InitLogger()
		logger.UseJSONOutput(cfg)
		logger.SetLogLevel(cfg)

		handler = di.InitializeService().Handler()
	})

	handler.ServeHTTP(w, r)
}
