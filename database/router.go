package database

import "strings"

// 命令名称（小写） -> 命令
var cmdTable = make(map[string]*command)

type command struct {
	name     string
	executor ExecFunc
	// prepare 返回执行前需要加写锁和读锁的key
	prepare PreFunc
	// 参数个数（包括命令名称），负数表示至少-arity个
	arity int
}

// RegisterCommand 注册命令，只在init中调用。
// arity means allowed number of cmdArgs, arity < 0 means len(args) >= -arity.
// for example: the arity of `slen` is 2, `sappend` is -3
// 只读还是写入由prepare返回的读写key决定。
func RegisterCommand(name string, executor ExecFunc, prepare PreFunc, arity int) {
	name = strings.ToLower(name)
	if _, ok := cmdTable[name]; ok {
		panic("command " + name + " registered twice")
	}
	cmdTable[name] = &command{
		name:     name,
		executor: executor,
		prepare:  prepare,
		arity:    arity,
	}
}

func lookupCommand(name string) (*command, bool) {
	cmd, ok := cmdTable[strings.ToLower(name)]
	return cmd, ok
}

// validArity cmdLine包含命令名称
func (cmd *command) validArity(cmdLine [][]byte) bool {
	if cmd.arity >= 0 {
		return len(cmdLine) == cmd.arity
	}
	return len(cmdLine) >= -cmd.arity
}

/* ---- prepare functions ---- */

func toKeys(args [][]byte) []string {
	keys := make([]string, len(args))
	for i, v := range args {
		keys[i] = string(v)
	}
	return keys
}

func writeFirstKey(args [][]byte) ([]string, []string) {
	return []string{string(args[0])}, nil
}

func writeAllKeys(args [][]byte) ([]string, []string) {
	return toKeys(args), nil
}

func readFirstKey(args [][]byte) ([]string, []string) {
	return nil, []string{string(args[0])}
}

func readAllKeys(args [][]byte) ([]string, []string) {
	return nil, toKeys(args)
}

func noPrepare(args [][]byte) ([]string, []string) {
	return nil, nil
}
