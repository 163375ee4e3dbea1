package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	mcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

func main() {
	endpoint := flag.String("endpoint", "http://localhost:8080/mcp/stream", "MCP streamable HTTP endpoint")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	client := mcp.NewClient(&mcp.Implementation{
		Name:    "jobboard-test-client",
		Version: "0.1.0",
	}, nil)

	session, err := client.Connect(ctx, &mcp.StreamableClientTransport{
		Endpoint: *endpoint,
	}, nil)
	if err != nil {
		log.Fatalf("Failed to connect: %v", err)
	}
	defer func() { _ = session.Close() }()

	log.Printf("Connected to server (session ID: %s)\n", session.ID())

	testListTools(ctx, session)
	testJobRefresh(ctx, session)
	testJobList(ctx, session)
	testJobAdd(ctx, session)
	testJobSearch(ctx, session)
	testJobStats(ctx, session)

	fmt.Println("\nAll tests completed")
}

func testListTools(ctx context.Context, session *mcp.ClientSession) {
	fmt.Println("\nTEST: list tools")

	res, err := session.ListTools(ctx, nil)
	if err != nil {
		log.Printf("list tools failed: %v", err)
		return
	}
	for _, tool := range res.Tools {
		fmt.Printf("  %s: %s\n", tool.Name, tool.Description)
	}
}

func testJobRefresh(ctx context.Context, session *mcp.ClientSession) {
	fmt.Println("\nTEST: job_refresh (wait)")
	call(ctx, session, "job_refresh", map[string]any{"wait": true})
}

func testJobList(ctx context.Context, session *mcp.ClientSession) {
	fmt.Println("\nTEST: job_list")
	call(ctx, session, "job_list", map[string]any{"limit": 5})

	// Out-of-range limits must be rejected at the boundary
	fmt.Println("job_list with limit 0")
	call(ctx, session, "job_list", map[string]any{"limit": 0})
}

func testJobAdd(ctx context.Context, session *mcp.ClientSession) {
	fmt.Println("\nTEST: job_add")
	call(ctx, session, "job_add", map[string]any{
		"job": map[string]any{
			"title":       "Staff Go Engineer",
			"company":     "Test Client Inc",
			"location":    "Portland, OR",
			"description": "Build job aggregation services",
			"tags":        []string{"go", "kubernetes"},
		},
	})
}

func testJobSearch(ctx context.Context, session *mcp.ClientSession) {
	fmt.Println("\nTEST: job_search")
	call(ctx, session, "job_search", map[string]any{"query": "go engineer", "limit": 5})
}

func testJobStats(ctx context.Context, session *mcp.ClientSession) {
	fmt.Println("\nTEST: job_stats")
	call(ctx, session, "job_stats", map[string]any{})
}

func call(ctx context.Context, session *mcp.ClientSession, name string, args map[string]any) {
	result, err := session.CallTool(ctx, &mcp.CallToolParams{Name: name, Arguments: args})
	if err != nil {
		log.Printf("%s failed: %v", name, err)
		return
	}
	if result.IsError {
		fmt.Printf("%s returned a tool error:\n", name)
	}
	printResult(result)
}

func printResult(res *mcp.CallToolResult) {
	for _, c := range res.Content {
		if txt, ok := c.(*mcp.TextContent); ok {
			fmt.Println(txt.Text)
		}
	}
}
