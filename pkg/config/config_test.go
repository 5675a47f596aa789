package config_test

import (
	"os"
	"path/filepath"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/spf13/cobra"

	"github.com/hearthhq/hearth/pkg/config"
)

func TestConfig(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Config Suite")
}

var _ = Describe("Configer", func() {
	var (
		dir    string
		cfger  *config.Configer
		newErr error
	)

	BeforeEach(func() {
		dir = GinkgoT().TempDir()
		cfger, newErr = config.NewConfiger(dir)
		Expect(newErr).NotTo(HaveOccurred())
	})

	It("targets config.toml inside the override directory", func() {
		Expect(cfger.GetTarget()).To(Equal(filepath.Join(dir, "config.toml")))
	})

	Describe("LoadConfig", func() {
		It("returns defaults when no file exists", func() {
			cfg, err := cfger.LoadConfig()
			Expect(err).NotTo(HaveOccurred())

			Expect(cfg.Version).To(Equal(config.CurrentV))
			Expect(cfg.Storage.Provider).To(Equal("file"))
			Expect(cfg.API.Listen).To(Equal(":8090"))
			Expect(cfg.MCP.Listen).To(Equal(":8091"))
			Expect(cfg.Events.Publisher).To(Equal("none"))
			Expect(cfg.Events.KafkaTopic).To(Equal("hearth.memory"))
			Expect(cfg.Flow.AckTokens).NotTo(BeEmpty())
		})

		It("fills unset fields from defaults", func() {
			partial := "[storage]\nprovider = \"sqlite\"\n"
			Expect(os.WriteFile(cfger.GetTarget(), []byte(partial), 0o600)).To(Succeed())

			cfg, err := cfger.LoadConfig()
			Expect(err).NotTo(HaveOccurred())

			Expect(cfg.Storage.Provider).To(Equal("sqlite"))
			Expect(cfg.API.Listen).To(Equal(":8090"))
			Expect(cfg.Events.Publisher).To(Equal("none"))
		})

		It("rejects malformed TOML", func() {
			Expect(os.WriteFile(cfger.GetTarget(), []byte("storage = [nope"), 0o600)).To(Succeed())

			_, err := cfger.LoadConfig()
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("SaveConfig", func() {
		It("round-trips the configuration", func() {
			cfg := config.NewDefaultConfig()
			cfg.Storage.Provider = "postgres"
			cfg.Storage.PostgresDSN = "postgres://localhost/hearth"
			cfg.Events.Publisher = "kafka"
			cfg.Events.KafkaBrokers = []string{"broker-1:9092", "broker-2:9092"}

			Expect(cfger.SaveConfig(cfg)).To(Succeed())

			loaded, err := cfger.LoadConfig()
			Expect(err).NotTo(HaveOccurred())
			Expect(loaded.Storage.Provider).To(Equal("postgres"))
			Expect(loaded.Storage.PostgresDSN).To(Equal("postgres://localhost/hearth"))
			Expect(loaded.Events.KafkaBrokers).To(Equal([]string{"broker-1:9092", "broker-2:9092"}))
		})

		It("rejects a nil config", func() {
			Expect(cfger.SaveConfig(nil)).To(HaveOccurred())
		})
	})

	Describe("SetConfigValue and GetConfigValue", func() {
		It("sets and reads back a scalar key", func() {
			Expect(cfger.SetConfigValue("api.listen", ":9999")).To(Succeed())

			got, err := cfger.GetConfigValue("api.listen")
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(Equal(":9999"))
		})

		It("parses and renders list keys as comma-separated values", func() {
			Expect(cfger.SetConfigValue("events.kafka_brokers", "a:9092, b:9092")).To(Succeed())

			got, err := cfger.GetConfigValue("events.kafka_brokers")
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(Equal("a:9092,b:9092"))
		})

		It("persists set values to disk", func() {
			Expect(cfger.SetConfigValue("storage.provider", "memory")).To(Succeed())

			fresh, err := config.NewConfiger(dir)
			Expect(err).NotTo(HaveOccurred())
			got, err := fresh.GetConfigValue("storage.provider")
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(Equal("memory"))
		})

		It("rejects unknown keys", func() {
			Expect(cfger.SetConfigValue("storage.bogus", "x")).To(HaveOccurred())

			_, err := cfger.GetConfigValue("storage.bogus")
			Expect(err).To(HaveOccurred())
		})
	})
})

var _ = Describe("Config keys", func() {
	It("validates every advertised key", func() {
		keys := config.ValidConfigKeys()
		Expect(keys).To(ContainElement("storage.provider"))
		Expect(keys).To(ContainElement("flow.ack_tokens"))

		for _, k := range keys {
			Expect(config.IsValidConfigKey(k)).To(BeTrue(), k)
		}
	})

	It("rejects unknown keys", func() {
		Expect(config.IsValidConfigKey("nope.nope")).To(BeFalse())
	})
})

var _ = Describe("InitViper", func() {
	var tmpDir string

	BeforeEach(func() {
		tmpDir = GinkgoT().TempDir()
	})

	It("returns viper with defaults when no config file exists", func() {
		v, err := config.InitViper(tmpDir)
		Expect(err).NotTo(HaveOccurred())
		Expect(v).NotTo(BeNil())

		defaults := config.NewDefaultConfig()
		Expect(v.GetString("storage.provider")).To(Equal(defaults.Storage.Provider))
		Expect(v.GetString("api.listen")).To(Equal(defaults.API.Listen))
		Expect(v.GetString("mcp.listen")).To(Equal(defaults.MCP.Listen))
		Expect(v.GetString("client.api_target")).To(Equal(defaults.Client.APITarget))
	})

	It("reads config file values over defaults", func() {
		data := `[storage]
provider = "sqlite"
`
		Expect(os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte(data), 0o600)).To(Succeed())

		v, err := config.InitViper(tmpDir)
		Expect(err).NotTo(HaveOccurred())

		Expect(v.GetString("storage.provider")).To(Equal("sqlite"))
		// Unset fields should still get defaults
		defaults := config.NewDefaultConfig()
		Expect(v.GetString("api.listen")).To(Equal(defaults.API.Listen))
	})

	It("respects environment variables with HEARTH_ prefix", func() {
		os.Setenv("HEARTH_STORAGE_PROVIDER", "postgres")
		defer os.Unsetenv("HEARTH_STORAGE_PROVIDER")

		v, err := config.InitViper(tmpDir)
		Expect(err).NotTo(HaveOccurred())

		Expect(v.GetString("storage.provider")).To(Equal("postgres"))
	})

	It("env vars take precedence over config file values", func() {
		data := `[storage]
provider = "sqlite"
`
		Expect(os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte(data), 0o600)).To(Succeed())

		os.Setenv("HEARTH_STORAGE_PROVIDER", "postgres")
		defer os.Unsetenv("HEARTH_STORAGE_PROVIDER")

		v, err := config.InitViper(tmpDir)
		Expect(err).NotTo(HaveOccurred())

		Expect(v.GetString("storage.provider")).To(Equal("postgres"))
	})
})

var _ = Describe("BindFlags", func() {
	var tmpDir string

	BeforeEach(func() {
		tmpDir = GinkgoT().TempDir()
	})

	It("binds cobra flags to viper keys via registry", func() {
		v, err := config.InitViper(tmpDir)
		Expect(err).NotTo(HaveOccurred())

		cmd := &cobra.Command{Use: "test"}
		var listen string
		config.AddStringFlag(cmd, config.Flags, config.FlagAPIListen, &listen)

		// Simulate flag being set by user
		Expect(cmd.Flags().Set("api-listen", ":7777")).To(Succeed())

		config.BindRegisteredFlags(v, cmd, config.Flags, []string{config.FlagAPIListen})

		Expect(v.GetString("api.listen")).To(Equal(":7777"))
	})

	It("falls through to config when flag not set", func() {
		data := `[api]
listen = ":5555"
`
		Expect(os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte(data), 0o600)).To(Succeed())

		v, err := config.InitViper(tmpDir)
		Expect(err).NotTo(HaveOccurred())

		cmd := &cobra.Command{Use: "test"}
		var listen string
		config.AddStringFlag(cmd, config.Flags, config.FlagAPIListen, &listen)

		// Do NOT set the flag -- should fall through to config file value
		config.BindRegisteredFlags(v, cmd, config.Flags, []string{config.FlagAPIListen})

		Expect(v.GetString("api.listen")).To(Equal(":5555"))
	})

	It("skips bindings for nonexistent registry keys", func() {
		v, err := config.InitViper(tmpDir)
		Expect(err).NotTo(HaveOccurred())

		cmd := &cobra.Command{Use: "test"}
		config.BindRegisteredFlags(v, cmd, config.Flags, []string{"nonexistent"})

		defaults := config.NewDefaultConfig()
		Expect(v.GetString("api.listen")).To(Equal(defaults.API.Listen))
	})

	It("AddStringFlag pulls name, shorthand, and description from the registry", func() {
		cmd := &cobra.Command{Use: "test"}
		var target string
		config.AddStringFlag(cmd, config.Flags, config.FlagAPITarget, &target)

		f := cmd.Flags().Lookup("api-target")
		Expect(f).NotTo(BeNil())
		Expect(f.Shorthand).To(Equal("a"))
		Expect(f.Usage).To(Equal("Hearth API server URL"))

		defaults := config.NewDefaultConfig()
		Expect(f.DefValue).To(Equal(defaults.Client.APITarget))
	})
})
