// 命令行工具：离线查询筛选结果、导入数据库与终端浏览
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gatemap/internal/api"
	"gatemap/internal/config"
	"gatemap/internal/dataset"
	"gatemap/internal/logger"
	"gatemap/internal/store"
	"gatemap/internal/utils"

	"github.com/spf13/cobra"
)

// options：全局参数，覆盖环境变量中的同名配置
type options struct {
	source  string
	gates   string
	offices string
	asJSON  bool
}

func main() {
	config.LoadEnvFiles()
	logger.Setup()
	if err := newRoot().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRoot() *cobra.Command {
	o := &options{}
	root := &cobra.Command{
		Use:           "gatectl",
		Short:         "Thai irrigation water-gate map tool",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	pf := root.PersistentFlags()
	pf.StringVar(&o.source, "source", "", "data source: bundled, file or db (default from DATA_SOURCE)")
	pf.StringVar(&o.gates, "gates", "", "gate list file (.json/.yaml)")
	pf.StringVar(&o.offices, "offices", "", "office table file (.yaml/.json)")
	pf.BoolVar(&o.asJSON, "json", false, "print JSON")

	root.AddCommand(
		gatesCmd(o),
		officesCmd(o),
		projectsCmd(o),
		colorCmd(o),
		locateCmd(o),
		importCmd(o),
		browseCmd(o),
	)
	return root
}

// config：环境配置叠加命令行参数；指定文件时隐含 file 来源
func (o *options) config() config.Config {
	c := config.FromEnv()
	if o.gates != "" {
		c.GatesPath = o.gates
		c.DataSource = "file"
	}
	if o.offices != "" {
		c.OfficesPath = o.offices
		c.DataSource = "file"
	}
	if o.source != "" {
		c.DataSource = o.source
	}
	return c
}

func (o *options) load(ctx context.Context) (api.Dataset, error) {
	c := o.config()
	if c.DataSource != "db" {
		return dataset.Load(ctx, c, nil)
	}
	db, err := utils.OpenPostgresFromEnv()
	if err != nil {
		return api.Dataset{}, fmt.Errorf("open postgres: %w", err)
	}
	defer db.Close()
	return dataset.Load(ctx, c, store.AttachDB(db))
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
