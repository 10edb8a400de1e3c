package main

import (
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/natefinch/lumberjack"
	"github.com/sdnlab/flowpath/internal/api"
	"github.com/sdnlab/flowpath/internal/service"
	"github.com/sdnlab/flowpath/pkg/builder"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
)

var (
	version bool
	verbose bool
	addr    string
	logPath string
)

func main() {
	pflag.BoolVarP(&version, "version", "V", false, "Print version")
	pflag.BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	pflag.StringVar(&addr, "addr", "127.0.0.1:9910", "API listen address")
	pflag.StringVar(&logPath, "log", "/var/log/flowpath/flowpathd.log", "Log file path")
	pflag.Parse()

	if version {
		fmt.Println(builder.BuildInfo())
		os.Exit(0)
	}

	if verbose {
		gin.SetMode(gin.DebugMode)
		logrus.SetLevel(logrus.DebugLevel)
	} else {
		gin.SetMode(gin.ReleaseMode)
		logrus.SetLevel(logrus.InfoLevel)
		logrus.SetOutput(&lumberjack.Logger{
			Filename:   logPath,
			MaxSize:    100,
			MaxBackups: 10,
			MaxAge:     60,
			Compress:   true,
		})
	}

	flow := service.NewFlowService()

	g := gin.New()
	g.Use(gin.Recovery())
	api.SetRouter(g, flow)

	logrus.WithField("addr", addr).Info("Serving flowpath api")
	if err := g.Run(addr); err != nil {
		logrus.WithField("err", err).Fatal("Serve api")
	}
}
