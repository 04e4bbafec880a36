package config

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	baseFile    = "base.yaml"
	secretsFile = "secrets.env"
)

// LoadConfig 读取 <dir>/base.yaml，叠加 <dir>/<env>.yaml（可缺省），
// 再把字符串值里的 ${VAR} 展开：先查 secrets.env，再查进程环境变量，都没有则为空串。
func LoadConfig(env string, configDir string) (map[string]interface{}, error) {
	if configDir == "" {
		configDir = "config"
	}

	tree, err := readYAML(filepath.Join(configDir, baseFile))
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", baseFile, err)
	}

	if env != "" && env != "base" {
		overlay, err := readYAML(filepath.Join(configDir, env+".yaml"))
		switch {
		case errors.Is(err, fs.ErrNotExist):
			// 没有该环境的配置文件，只用 base
		case err != nil:
			return nil, fmt.Errorf("failed to load %s.yaml: %w", env, err)
		default:
			tree = overlayMaps(tree, overlay)
		}
	}

	secrets, err := readEnvFile(filepath.Join(configDir, secretsFile))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load %s: %w", secretsFile, err)
	}

	lookup := func(key string) string {
		if v, ok := secrets[key]; ok {
			return v
		}
		return os.Getenv(key)
	}
	return expandTree(tree, lookup).(map[string]interface{}), nil
}

// Decode 把合并后的配置 map 解码到结构体（借 yaml 往返一次，time.Duration 等字段按 yaml 规则解析）
func Decode(merged map[string]interface{}, out interface{}) error {
	raw, err := yaml.Marshal(merged)
	if err != nil {
		return fmt.Errorf("failed to re-encode config: %w", err)
	}
	if err := yaml.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode config: %w", err)
	}
	return nil
}

func readYAML(path string) (map[string]interface{}, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	tree := map[string]interface{}{}
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	if tree == nil {
		tree = map[string]interface{}{}
	}
	return tree, nil
}

// readEnvFile 解析 KEY=VALUE 行，忽略空行和 # 注释，值两端的引号会被去掉
func readEnvFile(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	out := make(map[string]string)
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		out[strings.TrimSpace(key)] = unquote(strings.TrimSpace(value))
	}
	return out, sc.Err()
}

func unquote(v string) string {
	if len(v) >= 2 && (v[0] == '"' || v[0] == '\'') && v[len(v)-1] == v[0] {
		return v[1 : len(v)-1]
	}
	return v
}

// overlayMaps 返回 base 的副本，top 中的键覆盖之；两边都是 map 时递归合并
func overlayMaps(base, top map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(base)+len(top))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range top {
		if b, ok := out[k].(map[string]interface{}); ok {
			if t, ok := v.(map[string]interface{}); ok {
				out[k] = overlayMaps(b, t)
				continue
			}
		}
		out[k] = v
	}
	return out
}

func expandTree(node interface{}, lookup func(string) string) interface{} {
	switch v := node.(type) {
	case string:
		if !strings.Contains(v, "$") {
			return v
		}
		return os.Expand(v, lookup)
	case map[string]interface{}:
		out := make(map[string]interface{}, len(v))
		for k, child := range v {
			out[k] = expandTree(child, lookup)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(v))
		for i, child := range v {
			out[i] = expandTree(child, lookup)
		}
		return out
	default:
		return v
	}
}

// GetEnv 获取环境变量，如果未设置则返回默认值
func GetEnv(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return defaultValue
}

// GetConfigEnv 当前配置环境，取自 CONFIG_ENV，默认 local
func GetConfigEnv() string {
	return GetEnv("CONFIG_ENV", "local")
}
