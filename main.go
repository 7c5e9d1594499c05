package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	_interface "github.com/Ashwin-Surana/vertx-redis-client/interface"
	"github.com/Ashwin-Surana/vertx-redis-client/redis"
	Reply "github.com/Ashwin-Surana/vertx-redis-client/resp/reply"
	"github.com/Ashwin-Surana/vertx-redis-client/utils/logger"
)

var (
	cfgFile  string
	host     string
	port     int
	encoding string
)

var rootCmd = &cobra.Command{
	Use:   "redis-client",
	Short: "Interactive client for a redis server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := redis.LoadConfig(cfgFile)
		if err != nil {
			return err
		}
		// 命令行flag覆盖配置文件
		if cmd.Flags().Changed("host") {
			cfg.Host = host
		}
		if cmd.Flags().Changed("port") {
			cfg.Port = port
		}
		if cmd.Flags().Changed("encoding") {
			cfg.Encoding = encoding
		}
		return repl(cfg)
	},
}

func init() {
	rootCmd.Flags().StringVar(&cfgFile, "config", "", "config file")
	rootCmd.Flags().StringVar(&host, "host", "localhost", "server host")
	rootCmd.Flags().IntVar(&port, "port", 6379, "server port")
	rootCmd.Flags().StringVar(&encoding, "encoding", "UTF-8", "text encoding")
}

// repl 逐行读命令、发送并打印应答
func repl(cfg *redis.Config) error {
	client, err := redis.MakeClient(cfg)
	if err != nil {
		return err
	}
	if err := client.Start().Err(); err != nil {
		return err
	}
	defer client.Stop()

	fmt.Printf("connected to %s\n", cfg.Addr())
	scanner := bufio.NewScanner(os.Stdin)
	fmt.Print("> ")
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			fmt.Print("> ")
			continue
		}
		if strings.EqualFold(fields[0], "quit") || strings.EqualFold(fields[0], "exit") {
			break
		}
		args := make([]any, len(fields)-1)
		for i, field := range fields[1:] {
			args[i] = field
		}
		rep, err := client.Send(fields[0], args...).Reply()
		if err != nil {
			fmt.Println("(error)", err)
		} else {
			fmt.Print(render(rep, ""))
		}
		fmt.Print("> ")
	}
	return scanner.Err()
}

// render redis-cli风格的应答打印
func render(rep _interface.Reply, indent string) string {
	switch r := rep.(type) {
	case *Reply.StatusReply:
		return indent + r.Status + "\n"
	case *Reply.IntReply:
		return indent + "(integer) " + strconv.FormatInt(r.Code, 10) + "\n"
	case *Reply.BulkReply:
		if r.IsNull() {
			return indent + "(nil)\n"
		}
		return indent + "\"" + string(r.Bulk) + "\"\n"
	case *Reply.MultiReply:
		if r.IsNull() {
			return indent + "(nil)\n"
		}
		if r.Len() == 0 {
			return indent + "(empty array)\n"
		}
		var sb strings.Builder
		for i, element := range r.Replies {
			sb.WriteString(indent + strconv.Itoa(i+1) + ") ")
			sb.WriteString(strings.TrimPrefix(render(element, indent+"  "), indent+"  "))
		}
		return sb.String()
	}
	if rep == nil {
		return indent + "OK\n"
	}
	return indent + string(rep.ToBytes())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		logger.Fatal(err)
	}
}
