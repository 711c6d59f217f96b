package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"github.com/palemoky/tichu/internal/client"
	"github.com/palemoky/tichu/internal/config"
	"github.com/palemoky/tichu/internal/logger"
	"github.com/palemoky/tichu/internal/server"
	"github.com/palemoky/tichu/internal/ui"
)

func main() {
	serverAddr := flag.String("server", "localhost:1001", "服务器地址")
	name := flag.String("name", "", "玩家昵称，留空则随机生成")
	level := flag.String("log-level", "info", "日志级别")
	flag.Parse()

	// 终端界面占用标准输出，日志写入文件
	if err := logger.Init(config.LogConfig{Level: *level, File: logger.DefaultFile("client.log")}); err != nil {
		fmt.Fprintln(os.Stderr, "初始化日志失败:", err)
		os.Exit(1)
	}
	defer logger.Close()

	if *name == "" {
		*name = server.GenerateNickname()
	}

	c := client.NewClient(*serverAddr, *name)
	p := tea.NewProgram(ui.New(c, *name), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Error().Err(err).Msg("client exited")
		fmt.Fprintln(os.Stderr, "启动客户端时出错:", err)
		os.Exit(1)
	}
}
