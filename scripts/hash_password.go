// 生成 admin.password_hash 配置值
//
// 用法: go run scripts/hash_password.go -password '<明文密码>'
// 不带参数时从标准输入读取一行。

package main

import (
	"bufio"
	"flag"
	"fmt"
	"learning_dashboard_backend/internal/service"
	"log"
	"os"
	"strings"
)

func main() {
	password := flag.String("password", "", "管理员明文密码")
	flag.Parse()

	if *password == "" {
		reader := bufio.NewReader(os.Stdin)
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			log.Fatalf("读取密码失败: %v", err)
		}
		*password = strings.TrimRight(line, "\r\n")
	}
	if *password == "" {
		log.Fatal("密码不能为空")
	}

	hash, err := service.HashPassword(*password)
	if err != nil {
		log.Fatalf("生成哈希失败: %v", err)
	}
	fmt.Println(hash)
}
