package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"slices"

	"github.com/mnehpets/apirpc/envelope"
	"github.com/mnehpets/apirpc/internal/config"
	"github.com/mnehpets/apirpc/jsonrpc"
)

const logPrefix = "example:jsonrpc"

type TestAPI struct{}

func (a *TestAPI) RPCMethods() []jsonrpc.MethodDecl {
	return []jsonrpc.MethodDecl{
		jsonrpc.Expose("testMethod",
			jsonrpc.Required("varStr", jsonrpc.KindString),
			jsonrpc.Required("varArray", jsonrpc.KindArray),
			jsonrpc.Optional("varInt", jsonrpc.KindInt, 1),
			jsonrpc.Optional("varBool", jsonrpc.KindBool, true),
		),
		jsonrpc.Expose("testMethod2",
			jsonrpc.Required("amount", jsonrpc.KindInt),
			jsonrpc.Optional("str", jsonrpc.KindString, "Hello"),
		),
	}
}

func (a *TestAPI) TestMethod(ctx context.Context, varStr string, varArray []any, varInt int, varBool bool) (map[string]any, error) {
	return map[string]any{
		"success":  true,
		"varStr":   varStr + "_apirpc",
		"varArray": append(slices.Clone(varArray), "ApiRpc"),
		"varInt":   varInt * 2,
		"varBool":  varBool,
	}, nil
}

func (a *TestAPI) TestMethod2(ctx context.Context, amount int, str string) (map[string]any, error) {
	return map[string]any{
		"amount": amount,
		"str":    str,
	}, nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	level, _ := cfg.Level()
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if err := run(cfg); err != nil {
		code, _ := jsonrpc.Code(err)
		fmt.Printf("Code: %d | Message: %s\n", code, err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	codec, err := cfg.EnvelopeCodec()
	if err != nil {
		return err
	}

	raw, err := loadRequest(cfg, codec)
	if err != nil {
		return err
	}
	fmt.Printf("\nRequest: %s\n", show(codec, raw))

	d, err := jsonrpc.New(&TestAPI{}, jsonrpc.WithCodec(codec))
	if err != nil {
		return err
	}

	resp, err := d.Handle(context.Background(), raw)
	if err != nil {
		return err
	}
	fmt.Printf("\nResponse: %s\n", show(codec, resp))

	if cfg.PrintCatalog {
		catalog, err := json.MarshalIndent(d.Catalog(), "", "  ")
		if err != nil {
			return err
		}
		fmt.Printf("\nAll api methods\n\n%s\n", catalog)
	}
	return nil
}

// loadRequest reads the configured request file, or builds the sample request.
func loadRequest(cfg *config.Config, codec envelope.Codec) ([]byte, error) {
	if cfg.RequestFile != "" {
		slog.Info(fmt.Sprintf("%s - reading request from %s", logPrefix, cfg.RequestFile))
		return os.ReadFile(cfg.RequestFile)
	}
	req := envelope.NewRequest("testMethod", map[string]any{
		"varArray": []any{1, 2},
		"varBool":  false,
		"varStr":   "test",
		"varInt":   2,
	})
	return codec.Encode(req)
}

func show(codec envelope.Codec, raw []byte) string {
	if codec.Name() == "json" {
		return string(raw)
	}
	return fmt.Sprintf("%x", raw)
}
