package logfields

import "go.uber.org/zap"

func Event(val string) zap.Field {
	return zap.String("event", val)
}

func GithubEvent(val string) zap.Field {
	return zap.String("github.event_name", val)
}
