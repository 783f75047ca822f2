package model

import "github.com/sirupsen/logrus"

// 不正な入力を既定値に置き換えたときの警告の出力先
var logger logrus.FieldLogger = logrus.StandardLogger()

// SetLogger は警告の出力先を差し替えます。nil の場合は標準ロガーに戻します。
// 起動時に一度だけ呼び出すことを想定しています。
func SetLogger(l logrus.FieldLogger) {
	if l == nil {
		l = logrus.StandardLogger()
	}
	logger = l
}

// warn は入力の置き換え・スキップを警告として記録します。
func warn(op string, fields logrus.Fields, msg string) {
	logger.WithField("op", op).WithFields(fields).Warn(msg)
}
