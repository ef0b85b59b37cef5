package logginghelper

import (
	"github.com/jacostamo01/CalculadoraNoviembre01/internal/domain"
	log "github.com/sirupsen/logrus"
)

func LogReceived(logObj *domain.OperationLog) {
	log.WithFields(log.Fields{
		"op":       logObj.Op,
		"source":   logObj.Source,
		"endpoint": logObj.Endpoint,
		"method":   logObj.Method,
	}).Debug("Received operation log")
}

func LogSaved(logObj *domain.OperationLog, id int64) {
	log.WithFields(log.Fields{
		"op":          logObj.Op,
		"status_code": logObj.StatusCode,
		"id":          id,
	}).Info("Operation log saved")
}

func LogError(logObj *domain.OperationLog, err error) {
	log.WithFields(log.Fields{
		"op":       logObj.Op,
		"endpoint": logObj.Endpoint,
		"error":    err,
	}).Error("Failed to save operation log")
}

func LogIDError(action string, id int64, err error) {
	log.WithFields(log.Fields{
		"action": action,
		"id":     id,
		"error":  err,
	}).Error("Operation log lookup failed")
}
