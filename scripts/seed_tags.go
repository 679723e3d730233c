// 手动导入标签脚本
//
// 空库启动时只会写入少量默认标签，此脚本用于从 YAML 批量导入，
// 已存在的标签会被跳过。
//
// 用法: go run scripts/seed_tags.go [-file configs/seed_tags.yaml]

package main

import (
	"flag"
	"log"
	"os"
	"strings"

	"stackit_backend/internal/config"
	"stackit_backend/internal/repository"
	"stackit_backend/pkg/database"
	"stackit_backend/pkg/logger"

	"gopkg.in/yaml.v3"
)

type seedFile struct {
	Tags []string `yaml:"tags"`
}

func main() {
	file := flag.String("file", "configs/seed_tags.yaml", "标签 YAML 文件")
	flag.Parse()

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("无法读取配置文件: %v", err)
	}
	logger.InitLogger(cfg.Server.Mode)

	data, err := os.ReadFile(*file)
	if err != nil {
		log.Fatalf("无法读取标签文件: %v", err)
	}
	var seed seedFile
	if err := yaml.Unmarshal(data, &seed); err != nil {
		log.Fatalf("解析标签文件失败: %v", err)
	}

	names := make([]string, 0, len(seed.Tags))
	for _, t := range seed.Tags {
		if t = strings.TrimSpace(t); t != "" {
			names = append(names, t)
		}
	}

	db, err := database.InitDB(&cfg.Database, true)
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}

	tags, err := repository.NewTagRepository(db).GetOrCreate(names)
	if err != nil {
		log.Fatalf("导入标签失败: %v", err)
	}
	log.Printf("完成！共 %d 个标签", len(tags))
}
