package config_test

import (
	"context"
	"os"
	"testing"

	"github.com/courtside/fieldrank/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()

		convey.Convey("When loading config with defaults only", func() {
			clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
				convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
				convey.So(cfg.DefaultTopN, convey.ShouldEqual, 5)
				convey.So(cfg.MaxTopN, convey.ShouldEqual, 50)
				convey.So(cfg.TenureLatencyMinMS, convey.ShouldEqual, 20)
				convey.So(cfg.TenureLatencyMaxMS, convey.ShouldEqual, 60)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("FIELDRANK_ADDR", ":8080")
			_ = os.Setenv("FIELDRANK_DEFAULT_TOP_N", "3")
			_ = os.Setenv("FIELDRANK_MAX_TOP_N", "10")
			_ = os.Setenv("FIELDRANK_TENURE_LATENCY_MIN_MS", "5")
			_ = os.Setenv("FIELDRANK_TENURE_LATENCY_MAX_MS", "15")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.DefaultTopN, convey.ShouldEqual, 3)
				convey.So(cfg.MaxTopN, convey.ShouldEqual, 10)
				convey.So(cfg.TenureLatencyMinMS, convey.ShouldEqual, 5)
				convey.So(cfg.TenureLatencyMaxMS, convey.ShouldEqual, 15)
			})
		})

		convey.Convey("When loading config with YAML file", func() {
			yamlContent := `
addr: ":9090"
log_level: "debug"
default_top_n: 7
max_top_n: 20
tenure_data_path: "/etc/fieldrank/tenure.yaml"
`
			tmpFile := createTempConfigFile(t, yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("FIELDRANK_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load from YAML file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.LogLevel, convey.ShouldEqual, "debug")
				convey.So(cfg.DefaultTopN, convey.ShouldEqual, 7)
				convey.So(cfg.MaxTopN, convey.ShouldEqual, 20)
				convey.So(cfg.TenureDataPath, convey.ShouldEqual, "/etc/fieldrank/tenure.yaml")
			})

			convey.Convey("And environment variables win over the file", func() {
				_ = os.Setenv("FIELDRANK_ADDR", ":7070")

				cfg, err := config.Load(ctx)
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":7070")
				convey.So(cfg.DefaultTopN, convey.ShouldEqual, 7)
			})
		})

		convey.Convey("When the configuration is invalid", func() {
			defer clearConfigEnvVars()

			convey.Convey("A zero default_top_n is rejected", func() {
				_ = os.Setenv("FIELDRANK_DEFAULT_TOP_N", "0")
				_, err := config.Load(ctx)
				convey.So(err, convey.ShouldNotBeNil)
			})

			convey.Convey("A max below the default is rejected", func() {
				_ = os.Setenv("FIELDRANK_MAX_TOP_N", "2")
				_ = os.Setenv("FIELDRANK_DEFAULT_TOP_N", "5")
				_, err := config.Load(ctx)
				convey.So(err, convey.ShouldNotBeNil)
			})

			convey.Convey("Inverted latency bounds are rejected", func() {
				_ = os.Setenv("FIELDRANK_TENURE_LATENCY_MIN_MS", "100")
				_ = os.Setenv("FIELDRANK_TENURE_LATENCY_MAX_MS", "50")
				_, err := config.Load(ctx)
				convey.So(err, convey.ShouldNotBeNil)
			})

			convey.Convey("A missing config file is reported", func() {
				_ = os.Setenv("FIELDRANK_CONFIG", "/nonexistent/config.yaml")
				_, err := config.Load(ctx)
				convey.So(err, convey.ShouldNotBeNil)
			})
		})
	})
}

func clearConfigEnvVars() {
	for _, key := range []string{
		"FIELDRANK_CONFIG",
		"FIELDRANK_ADDR",
		"FIELDRANK_LOG_LEVEL",
		"FIELDRANK_DEFAULT_TOP_N",
		"FIELDRANK_MAX_TOP_N",
		"FIELDRANK_ALIAS_TABLE_PATH",
		"FIELDRANK_SCHOOL_FIXTURE_PATH",
		"FIELDRANK_TENURE_DATA_PATH",
		"FIELDRANK_TENURE_LATENCY_MIN_MS",
		"FIELDRANK_TENURE_LATENCY_MAX_MS",
	} {
		_ = os.Unsetenv(key)
	}
}

func createTempConfigFile(t *testing.T, content string) string {
	t.Helper()
	f, err := os.CreateTemp(t.TempDir(), "fieldrank-*.yaml")
	if err != nil {
		t.Fatalf("create temp config: %v", err)
	}
	if _, err := f.WriteString(content); err != nil {
		t.Fatalf("write temp config: %v", err)
	}
	_ = f.Close()
	return f.Name()
}
