package main

import (
	"context"

	"dr-failover-lambda/pkg/lambda/warm"
	"dr-failover-lambda/pkg/server"

	awslambda "github.com/aws/aws-lambda-go/lambda"
)

var container *server.Container

func init() {
	var err error
	container, err = warm.GetConnectionManager().GetContainer(context.Background())
	if err != nil {
		panic("Failed to initialize container: " + err.Error())
	}
}

func main() {
	container.Logger.WithField("stage", container.Config.Stage).Info("Starting DR Lambda")
	awslambda.Start(container.DRHandler.Handle)
}
