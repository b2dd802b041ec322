package cmd

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/dzjyyds666/gotoml/flatten"
	"github.com/dzjyyds666/gotoml/pkg"
	"github.com/dzjyyds666/gotoml/toml"
)

type TomlParams struct {
	Find   string `json:"find"`   // 查找的key，支持用.分隔的路径
	Input  string `json:"input"`  // 输入文件路径
	Output string `json:"output"` // 输出文件地址
}

var params *TomlParams

var tomlCmd = &cobra.Command{
	Use:   "toml",
	Short: "toml parse tools",
	Run:   tomlRun,
}

func init() {
	params = &TomlParams{}
	tomlCmd.Flags().StringVarP(&params.Find, "find", "f", "", "dotted-key path to look up, e.g. server.tls.enabled")
	tomlCmd.Flags().StringVarP(&params.Input, "input", "i", "", "input file path")
	tomlCmd.Flags().StringVarP(&params.Output, "output", "o", "", "output path; if empty, result is logged instead")
}

func tomlRun(cmd *cobra.Command, args []string) {
	if len(params.Input) == 0 {
		logrus.Error("no input file path")
		return
	}
	exist, err := pkg.CheckFileExist(params.Input)
	if err != nil {
		logrus.WithError(err).Error("check file exist error")
		return
	}
	if !exist {
		logrus.WithField("path", params.Input).Error("input file not exist")
		return
	}

	f, err := os.Open(params.Input)
	if err != nil {
		logrus.WithError(err).Error("open input file")
		return
	}
	defer f.Close()

	root, err := toml.Parse(f)
	if err != nil {
		logrus.WithError(err).Error("parse toml")
		return
	}

	var result any
	if params.Find != "" {
		parts := strings.Split(params.Find, ".")
		n, ok := toml.Get(root, parts...)
		if !ok {
			logrus.WithField("find", params.Find).Error("key not found")
			return
		}
		result = toml.ToUntyped(n)
	} else {
		result = flatten.Flatten(root)
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		logrus.WithError(err).Error("marshal result")
		return
	}

	if params.Output == "" {
		logrus.Info(string(out))
		return
	}
	if err := os.WriteFile(params.Output, out, 0o644); err != nil {
		logrus.WithError(err).Error("write output file")
		return
	}
	logrus.WithField("path", params.Output).Info("wrote result")
}
