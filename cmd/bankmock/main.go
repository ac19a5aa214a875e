package main

import (
	"net/http"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/easybank/portal/internal/logging"
	"github.com/easybank/portal/internal/mockbank"
)

func main() {
	logger := logging.SetupLogging()
	logrus.Info("bankmock starting")

	port := os.Getenv("BANKMOCK_PORT")
	if len(port) == 0 {
		port = "8080"
	}

	handler, _ := mockbank.NewHandler()

	server := http.Server{
		Addr:              ":" + port,
		Handler:           handler,
		ReadTimeout:       time.Duration(30) * time.Second,
		WriteTimeout:      time.Duration(30) * time.Second,
		IdleTimeout:       time.Duration(10) * time.Second,
		ReadHeaderTimeout: time.Duration(10) * time.Second,
	}

	logger.WithField("port", port).Info("BankMock.Serve.listening")
	err := server.ListenAndServe()
	if err != nil {
		logger.WithError(err).Error("BankMock.Serve.listen error")
	}
	logger.Info("BankMock.Serve.shutting down")
}
