package messages

type CommandType string

const (
	ServerCommand    CommandType = "server"
	BroadcastCommand CommandType = "broadcast"
)

type CommandInfo struct {
	Type CommandType
}

var validCommands = map[string]CommandInfo{
	"game_state": {Type: BroadcastCommand},
	"game_over":  {Type: BroadcastCommand},
}
