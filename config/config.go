package config

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	"miniSeq/lib/utils"
)

// ServerProperties 定义了服务器全局的配置
type ServerProperties struct {
	RunID      string `cfg:"runid"`      // 每次启动服务器时，都会生成一个唯一的 RunID。
	Bind       string `cfg:"bind"`       // 服务器绑定的 IP 地址。
	Port       int    `cfg:"port"`       // 服务器绑定的端口号。
	Multicore  bool   `cfg:"multicore"`  // 是否为每个CPU开启一个事件循环。
	MaxClients int    `cfg:"maxclients"` // 服务器能够处理的最大客户端连接数，0表示不限制。
	Databases  int    `cfg:"databases"`  // 支持的数据库数。

	// 日志
	LogLevel      string `cfg:"loglevel"`
	LogFile       string `cfg:"logfile"`
	LogMaxSize    int    `cfg:"log-max-size"`
	LogMaxBackups int    `cfg:"log-max-backups"`
	LogMaxAge     int    `cfg:"log-max-age"`

	// 关闭时等待正在执行的命令的时间
	ShutdownTimeout time.Duration `cfg:"shutdown-timeout"`

	// 配置文件的路径。
	CfPath string `cfg:"cf,omitempty"`
}

type ServerInfo struct {
	StartUpTime time.Time
}

var Properties *ServerProperties

var EachTimeServerInfo *ServerInfo

func init() {
	EachTimeServerInfo = &ServerInfo{
		StartUpTime: time.Now(),
	}

	Properties = defaultProperties()
}

func defaultProperties() *ServerProperties {
	return &ServerProperties{
		Bind:            "127.0.0.1",
		Port:            6399,
		Multicore:       true,
		Databases:       16,
		LogLevel:        "info",
		LogMaxSize:      100,
		LogMaxBackups:   7,
		LogMaxAge:       30,
		ShutdownTimeout: 10 * time.Second,
		RunID:           utils.RandString(40),
	}
}

// Address 返回gnet需要的监听地址
func (p *ServerProperties) Address() string {
	return fmt.Sprintf("tcp://%s:%d", p.Bind, p.Port)
}

// parse 读取 "key value" 格式的配置，#开头的行是注释
func parse(src io.Reader) (*ServerProperties, error) {
	config := defaultProperties()

	rawMap := make(map[string]string)
	scanner := bufio.NewScanner(src)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if len(line) == 0 || line[0] == '#' {
			continue
		}
		pivot := strings.IndexAny(line, " \t")
		if pivot > 0 && pivot < len(line)-1 {
			key := line[0:pivot]
			value := strings.TrimSpace(line[pivot+1:])
			rawMap[strings.ToLower(key)] = value
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	t := reflect.TypeOf(config).Elem()
	v := reflect.ValueOf(config).Elem()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		key, ok := field.Tag.Lookup("cfg")
		if !ok || strings.TrimSpace(key) == "" {
			key = field.Name
		}
		key = strings.Split(key, ",")[0]
		value, ok := rawMap[strings.ToLower(key)]
		if !ok {
			continue
		}
		if err := setField(v.Field(i), value); err != nil {
			return nil, fmt.Errorf("config: %s: %w", key, err)
		}
	}
	return config, nil
}

func setField(field reflect.Value, value string) error {
	// time.Duration 底层也是int64，需要先判断
	if field.Type() == reflect.TypeOf(time.Duration(0)) {
		d, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		field.SetInt(int64(d))
		return nil
	}
	switch field.Kind() {
	case reflect.String:
		field.SetString(value)
	case reflect.Int, reflect.Int64:
		intValue, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return err
		}
		field.SetInt(intValue)
	case reflect.Bool:
		field.SetBool(value == "yes" || value == "true")
	case reflect.Slice:
		if field.Type().Elem().Kind() == reflect.String {
			slice := strings.Split(value, ",")
			field.Set(reflect.ValueOf(slice))
		}
	}
	return nil
}

// SetupConfig 读取配置文件，覆盖全局的 Properties
func SetupConfig(configFilename string) error {
	file, err := os.Open(configFilename)
	if err != nil {
		return err
	}
	defer file.Close()
	p, err := parse(file)
	if err != nil {
		return err
	}
	p.CfPath = configFilename
	Properties = p
	return nil
}
