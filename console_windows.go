package main

import (
	"log"
	"os"
	"syscall"
)

const attachParentProcess = ^uint32(0) // (DWORD)-1

var (
	modkernel32       = syscall.NewLazyDLL("kernel32.dll")
	procAttachConsole = modkernel32.NewProc("AttachConsole")
)

func attachConsole(dwParentProcess uint32) (ok bool, lasterr error) {
	r1, _, lasterr := syscall.SyscallN(procAttachConsole.Addr(), uintptr(dwParentProcess), 0, 0)
	return r1 != 0, lasterr
}

var oldStdout, oldStderr = os.Stdout, os.Stderr //lint:ignore U1000 Prevent GC of the original std handles

// A GUI build has no console, borrow the one of the shell that started us
// so -help and the log end up somewhere.
func init() {
	ok, _ := attachConsole(attachParentProcess)
	if !ok {
		return
	}
	hout, err := syscall.GetStdHandle(syscall.STD_OUTPUT_HANDLE)
	if err != nil {
		log.Printf("stdout connection error: %v", err)
		return
	}
	herr, err := syscall.GetStdHandle(syscall.STD_ERROR_HANDLE)
	if err != nil {
		log.Printf("stderr connection error: %v", err)
		return
	}
	os.Stdout = os.NewFile(uintptr(hout), "/dev/stdout")
	os.Stderr = os.NewFile(uintptr(herr), "/dev/stderr")
	log.SetOutput(os.Stderr)
}
