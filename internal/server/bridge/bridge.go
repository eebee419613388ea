package main

/*
#include <stdbool.h>
#include <stdint.h>
#include <stdlib.h>
*/
import "C"
import (
	"unsafe"
)

// 以 C ABI 导出规则判断与选点，编译：go build -buildmode=c-shared。
// 返回 *C.char 的函数由调用方用 FreeString 释放。

//export IsLegal
func IsLegal(sfen *C.char, usi *C.char) C.bool {
	return C.bool(isLegal(C.GoString(sfen), C.GoString(usi)))
}

//export LegalMoves
func LegalMoves(sfen *C.char) *C.char {
	return C.CString(legalMoves(C.GoString(sfen)))
}

//export CheckWinner
func CheckWinner(sfen *C.char) C.int8_t {
	return C.int8_t(checkWinner(C.GoString(sfen)))
}

//export SelectMove
func SelectMove(sfen *C.char, level *C.char, seed C.int64_t) *C.char {
	return C.CString(selectMove(C.GoString(sfen), C.GoString(level), int64(seed)))
}

//export FreeString
func FreeString(s *C.char) {
	C.free(unsafe.Pointer(s))
}

func main() {}
