package main

import (
	"context"
	"log"

	"jira_mcp/internal/config"
	"jira_mcp/internal/handler"
	"jira_mcp/internal/logger"
	"jira_mcp/internal/service/jira"
	mcpserver "jira_mcp/internal/service/mcp-server"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	ginadapter "github.com/awslabs/aws-lambda-go-api-proxy/gin"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ProxyHandler answers one API Gateway event.
type ProxyHandler func(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error)

// newProxyHandler wires the Jira client, the stateless MCP endpoint and the
// gin router behind an API Gateway proxy adapter.
func newProxyHandler(cfg *config.Config) (ProxyHandler, error) {
	jiraClient, err := jira.NewClient(cfg)
	if err != nil {
		return nil, err
	}

	gin.SetMode(gin.ReleaseMode)
	s := mcpserver.NewServer(jiraClient)
	router := handler.NewRouter(mcpserver.NewHTTPHandler(s))
	ginLambda := ginadapter.New(router)

	return func(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		return ginLambda.ProxyWithContext(ctx, req)
	}, nil
}

func main() {
	cfg, err := config.Load(config.NewViper())
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.LogLevel); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	h, err := newProxyHandler(cfg)
	if err != nil {
		logger.GetLogger().Fatal("Failed to create handler", zap.Error(err))
	}

	logger.GetLogger().Info("Starting Jira MCP lambda", zap.String("jira_url", cfg.JiraURL))
	lambda.Start(h)
}
