package log

import (
	"os"
	"path/filepath"

	"github.com/awsri/healthlake-mcp/conf"
	"github.com/sirupsen/logrus"
)

var (
	Tool logrus.FieldLogger
	AWS  logrus.FieldLogger
	FHIR logrus.FieldLogger
)

func init() {
	Tool = Logger(logrus.New(), conf.GetEnv("HLMCP_ERROR_LOG"),
		"hlmcp", conf.GetEnv("ENVIRONMENT"))
	AWS = Logger(logrus.New(), conf.GetEnv("HLMCP_AWS_LOG"),
		"hlmcp", conf.GetEnv("ENVIRONMENT"))
	FHIR = Logger(logrus.New(), conf.GetEnv("HLMCP_FHIR_LOG"),
		"hlmcp", conf.GetEnv("ENVIRONMENT"))
}

func Logger(logger *logrus.Logger, outputFile string,
	application, environment string) logrus.FieldLogger {

	// The MCP host owns stdout for protocol traffic, so logs go to a file when
	// configured and stderr otherwise.
	logger.SetOutput(os.Stderr)
	logger.SetFormatter(&logrus.JSONFormatter{})

	if outputFile != "" {
		if file, err := os.OpenFile(filepath.Clean(outputFile), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0640); err == nil {
			logger.SetOutput(file)
		} else {
			logger.Infof("Failed to open output file %s. Will use stderr. %s",
				outputFile, err.Error())
		}
	}

	return logger.WithFields(logrus.Fields{
		"application": application,
		"environment": environment})
}
