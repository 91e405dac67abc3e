// minigame-token 命令行入口
package main

import "github.com/noble-gase/minigame/internal/cli"

func main() {
	cli.Execute()
}
