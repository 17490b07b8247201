// yodel-mcp exposes the configuration loader as an MCP stdio server, so
// agent tooling can resolve effective configuration over an in-memory
// filesystem without touching disk.
package main

import (
	"context"
	"encoding/json"
	"log"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/yodelconfig/yodel"
)

func main() {
	mcpServer := server.NewMCPServer(
		"yodel-mcp",
		"1.0.0",
		server.WithToolCapabilities(false),
	)

	loadTool := mcp.NewTool("load",
		mcp.WithDescription("Load layered configuration (base + profiles) and return the effective result"),
		mcp.WithString("source",
			mcp.Required(),
			mcp.Description("Config file path or directory path within fileSystem"),
		),
		mcp.WithObject("fileSystem",
			mcp.Required(),
			mcp.Description("Map of filename to file content for the operation"),
		),
		mcp.WithString("profiles",
			mcp.Description("Comma-separated profile names to overlay"),
		),
		mcp.WithString("format",
			mcp.Description("Output format (yaml, json, json-pretty, toml, properties); defaults to json-pretty"),
		),
		mcp.WithObject("environment",
			mcp.Description("Environment variables for ${VAR} placeholder resolution, as key-value pairs"),
		),
		mcp.WithBoolean("strict",
			mcp.Description("Fail on unresolved ${VAR} placeholders"),
		),
	)
	mcpServer.AddTool(loadTool, loadHandler)

	if err := server.ServeStdio(mcpServer); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

func loadHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	source, err := request.RequireString("source")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	args, ok := request.Params.Arguments.(map[string]any)
	if !ok {
		return mcp.NewToolResultError("Invalid arguments format"), nil
	}

	fileSystem, err := parseFileSystem(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	env, err := parseEnvironment(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	outFormat := parseOptionalString(args, "format", "json-pretty")

	opts := yodel.NewOptions().
		WithFS(createTestFS(fileSystem)).
		WithEnvironmentMap(env)

	if strict, _ := args["strict"].(bool); strict {
		opts = opts.WithResolveMode(yodel.Strict)
	}

	profiles := parseOptionalString(args, "profiles", "")
	if profiles != "" {
		names := []string{}

		for _, name := range strings.Split(profiles, ",") {
			if name = strings.TrimSpace(name); name != "" {
				names = append(names, name)
			}
		}

		opts = opts.WithProfiles(names...)
	}

	loaded, err := yodel.LoadWithOptions(opts, source)
	if err != nil {
		return mcp.NewToolResultError(yodel.DescribeError(err)), nil
	}

	output, err := loaded.Render(yodel.Format(outFormat))
	if err != nil {
		return mcp.NewToolResultError(yodel.DescribeError(err)), nil
	}

	response := map[string]any{
		"source":    source,
		"format":    outFormat,
		"output":    string(output),
		"paths":     loaded.Paths(),
		"operation": "load",
	}

	if len(env) > 0 {
		response["environment"] = env
	}

	resultJSON, err := json.MarshalIndent(response, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(string(resultJSON)), nil
}
