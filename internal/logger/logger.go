// Package logger constructs the process-wide zap logger.
package logger

import "go.uber.org/zap"

// NewNamed creates a logger for the given environment, named after the
// service. Production gets JSON output, everything else the development
// console encoder.
func NewNamed(env, name string) (*zap.Logger, error) {
	var (
		log *zap.Logger
		err error
	)
	if env == "production" {
		log, err = zap.NewProduction()
	} else {
		log, err = zap.NewDevelopment()
	}
	if err != nil {
		return nil, err
	}
	return log.Named(name), nil
}
