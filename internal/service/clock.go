package service

import "time"

// Clock 提供当前自然日，便于测试中固定时间
type Clock interface {
	Now() time.Time
	Today() time.Time
}

type systemClock struct{}

// SystemClock 返回基于系统时间的时钟
func SystemClock() Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return time.Now().UTC()
}

func (systemClock) Today() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
