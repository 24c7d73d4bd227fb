package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/desertthunder/spotx/internal/shared"
	"github.com/urfave/cli/v3"
)

// apiCommand makes authenticated requests to arbitrary Web API paths
func apiCommand(r *Runner) *cli.Command {
	sub := func(method, usage string, body bool) *cli.Command {
		flags := []cli.Flag{
			&cli.StringSliceFlag{
				Name:    "query",
				Aliases: []string{"q"},
				Usage:   "Query parameter as key=value, may be repeated",
			},
			&cli.BoolFlag{
				Name:  "compact",
				Usage: "Print JSON responses on one line",
			},
		}
		if body {
			flags = append(flags, &cli.StringFlag{
				Name:    "data",
				Aliases: []string{"d"},
				Usage:   "JSON body to send",
			})
		}
		return &cli.Command{
			Name:      strings.ToLower(method),
			Usage:     usage,
			Arguments: []cli.Argument{&cli.StringArg{Name: "path"}},
			Flags:     flags,
			Action:    r.action(r.apiRequest(method)),
		}
	}

	return &cli.Command{
		Name:  "api",
		Usage: "Direct calls to the Web API, prints the raw response",
		Commands: []*cli.Command{
			sub(http.MethodGet, "GET a path, e.g. /me/player", false),
			sub(http.MethodPost, "POST a JSON body", true),
			sub(http.MethodPut, "PUT a JSON body", true),
			sub(http.MethodDelete, "DELETE a path", true),
		},
	}
}

func parseQuery(values []string) (url.Values, error) {
	q := url.Values{}
	for _, kv := range values {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("%w: --query %q is not key=value", shared.ErrInvalidFlag, kv)
		}
		q.Add(key, value)
	}
	return q, nil
}

func (r *Runner) apiRequest(method string) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		path, err := requireArg(cmd, "path")
		if err != nil {
			return err
		}

		query, err := parseQuery(cmd.StringSlice("query"))
		if err != nil {
			return err
		}

		var body []byte
		if data := cmd.String("data"); data != "" {
			if !json.Valid([]byte(data)) {
				return fmt.Errorf("%w: data is not valid JSON", shared.ErrInvalidInput)
			}
			body = []byte(data)
		}

		catalog, err := r.catalogFor(ctx, cmd)
		if err != nil {
			return err
		}

		r.logger.Info("api request", "method", method, "path", path)

		resp, err := catalog.Raw(ctx, method, path, query, body)
		if err != nil {
			return err
		}

		if resp.IsJSON {
			err = r.writeJSON(resp.JSONData, !cmd.Bool("compact"))
		} else if len(resp.Body) > 0 {
			err = r.writePlain("%s\n", resp.Body)
		}
		if err != nil {
			return err
		}

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return fmt.Errorf("%w: status %d", shared.ErrAPIRequest, resp.StatusCode)
		}
		return nil
	}
}
