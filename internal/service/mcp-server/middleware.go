package mcpserver

import (
	"context"
	"errors"
	"time"

	"jira_mcp/internal/logger"
	"jira_mcp/internal/model"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"
)

var errToolResult = errors.New("tool returned an error result")

// withCallLogging logs one line per tool call with a readable summary,
// the duration and, for paginated responses, the page metadata.
func withCallLogging(f *ToolMessageFormatter, tool server.ServerTool) server.ServerTool {
	name := tool.Tool.Name
	next := tool.Handler
	tool.Handler = func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		start := time.Now()
		result, err := next(ctx, req)

		log := logger.GetLogger()
		args := req.GetArguments()
		fields := []zap.Field{
			zap.String("tool", name),
			zap.Duration("duration", time.Since(start)),
		}

		switch {
		case err != nil:
			log.Error(f.FormatToolCallMessage(name, args, err), append(fields, zap.Error(err))...)
		case result != nil && result.IsError:
			log.Warn(f.FormatToolCallMessage(name, args, errToolResult), append(fields, zap.String("error", ToolResultText(result)))...)
		default:
			if page, ok := model.ParsePage([]byte(ToolResultText(result))); ok {
				fields = append(fields, page.Fields()...)
			}
			log.Info(f.FormatToolCallMessage(name, args, nil), fields...)
		}
		return result, err
	}
	return tool
}
