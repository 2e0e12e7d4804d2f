// Package mcpapi exposes the five weather and marine operations as MCP
// tools for AI-assistant clients.
package mcpapi

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/dkhoward/weather-marine-mcp/internal/service"
)

// NewServer builds the MCP server with all five tools registered.
func NewServer(svc *service.Service, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"weather-marine-mcp",
		version,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)

	locationParam := func(desc string) mcp.ToolOption {
		return mcp.WithString("location",
			mcp.Required(),
			mcp.Description(desc),
		)
	}

	s.AddTool(
		mcp.NewTool("get_current_conditions",
			mcp.WithDescription("Get the latest observed weather conditions for a US location."),
			locationParam("Place name, 'city, state' text, or US postal code, e.g. 'Destin, FL' or '32541'."),
		),
		handle(func(ctx context.Context, location string, _ int) (interface{}, *service.ErrorPayload) {
			return asResult(svc.CurrentConditions(ctx, location))
		}),
	)

	s.AddTool(
		mcp.NewTool("get_forecast",
			mcp.WithDescription("Get the multi-period weather forecast for a US location."),
			locationParam("Place name, 'city, state' text, or US postal code."),
		),
		handle(func(ctx context.Context, location string, _ int) (interface{}, *service.ErrorPayload) {
			return asResult(svc.Forecast(ctx, location))
		}),
	)

	s.AddTool(
		mcp.NewTool("get_radar_info",
			mcp.WithDescription("Get the radar station and imagery URLs covering a US location."),
			locationParam("Place name, 'city, state' text, or US postal code."),
		),
		handle(func(ctx context.Context, location string, _ int) (interface{}, *service.ErrorPayload) {
			return asResult(svc.RadarInfo(ctx, location))
		}),
	)

	s.AddTool(
		mcp.NewTool("get_marine_conditions",
			mcp.WithDescription("Get current ocean conditions (waves, swell, sea temperature, currents) for a coastal location."),
			locationParam("Coastal place name or US postal code."),
		),
		handle(func(ctx context.Context, location string, _ int) (interface{}, *service.ErrorPayload) {
			return asResult(svc.MarineConditions(ctx, location))
		}),
	)

	s.AddTool(
		mcp.NewTool("get_marine_forecast",
			mcp.WithDescription("Get an hourly and daily marine forecast for a coastal location."),
			locationParam("Coastal place name or US postal code."),
			mcp.WithNumber("days",
				mcp.Description("Forecast horizon in days, 1-7. Defaults to 7."),
			),
		),
		handleWithDays(func(ctx context.Context, location string, days int) (interface{}, *service.ErrorPayload) {
			return asResult(svc.MarineForecast(ctx, location, days))
		}),
	)

	return s
}

type operation func(ctx context.Context, location string, days int) (interface{}, *service.ErrorPayload)

func handle(op operation) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		location, err := request.RequireString("location")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toToolResult(op(ctx, location, 0))
	}
}

func handleWithDays(op operation) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		location, err := request.RequireString("location")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		days := request.GetInt("days", service.MaxForecastDays)
		return toToolResult(op(ctx, location, days))
	}
}

// toToolResult serializes a result (or the structured error payload) into
// the tool response. Failures are reported through the payload, never as a
// protocol-level error.
func toToolResult(result interface{}, errPayload *service.ErrorPayload) (*mcp.CallToolResult, error) {
	if errPayload != nil {
		b, err := json.Marshal(errPayload)
		if err != nil {
			return mcp.NewToolResultError(errPayload.Message), nil
		}
		return mcp.NewToolResultError(string(b)), nil
	}

	b, err := json.Marshal(result)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to serialize result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}

// asResult widens a typed result pointer into the handler's interface
// return without turning a nil pointer into a non-nil interface.
func asResult[T any](res *T, errPayload *service.ErrorPayload) (interface{}, *service.ErrorPayload) {
	if res == nil {
		return nil, errPayload
	}
	return res, errPayload
}
