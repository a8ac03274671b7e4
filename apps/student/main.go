package main

import (
	"fmt"
	"log"
	"os"

	"github.com/chaimtop/studygo/core"
	"github.com/chaimtop/studygo/core/session"
	"github.com/chaimtop/studygo/core/student"
	apisvc "github.com/chaimtop/studygo/services/api"
	logsvc "github.com/chaimtop/studygo/services/logger"
	"github.com/chaimtop/studygo/storage/local"
)

func main() {
	conf := core.NewConfig()
	std := log.New(os.Stderr, "studygo: ", log.LstdFlags)

	var logger core.Logger
	if conf.Debug || conf.RollbarToken == "" {
		logger = logsvc.NewConsoleLogger(std, conf.Debug)
	} else {
		logger = logsvc.NewRollbarLogger(std, conf)
	}

	// set up the local store
	db, err := local.Open(conf)
	if err != nil {
		logger.Fatal("opening local store", err)
	}
	defer func() { _ = db.Close() }()

	// set up the session, pipeline and operations
	sess := session.NewStore(local.NewSessionRepository(db), logger)
	client := apisvc.NewClient(conf, sess, logger)
	client.OnSessionExpired = func() {
		fmt.Println("登录已过期，请重新登录 (run: student login -code <code>)")
	}
	svc := student.NewService(client, sess)

	cli := &commandLine{conf: conf, session: sess, svc: svc}
	if err := cli.run(os.Args); err != nil && err != errHelp {
		fmt.Fprintln(os.Stderr, renderError(err))
		os.Exit(1)
	}
}
