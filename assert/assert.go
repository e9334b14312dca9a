package assert

import "github.com/qkarena/qk/qerror"

func IsTrue(ok bool, message string, args ...interface{}) {
	if !ok {
		panic(qerror.New(message, args...))
	}
}
