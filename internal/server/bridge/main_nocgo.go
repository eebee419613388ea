//go:build !cgo

package main

// bridge.go 依赖 cgo；未启用 cgo 时仍需一个 main 以便包可编译、可测试。
func main() {}
