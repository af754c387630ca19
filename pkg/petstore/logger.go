package petstore

// Logger receives the client's diagnostics: header dumps and upload stubs at
// debug, undecodable lookups at warn, transport failures at error.
type Logger interface {
	DebugObj(msg, key string, obj interface{})
	WarnObj(msg, key string, obj interface{})
	ErrorObj(msg, key string, obj interface{})
}

type silent struct{}

func (silent) DebugObj(string, string, interface{}) {}
func (silent) WarnObj(string, string, interface{})  {}
func (silent) ErrorObj(string, string, interface{}) {}

func ensureLogger(log Logger) Logger {
	if log == nil {
		return silent{}
	}
	return log
}
