package probe

import "golang.org/x/sys/unix"

// pTraced is P_TRACED from <sys/proc.h>.
const pTraced = 0x00000800

func attached() bool {
	kp, err := unix.SysctlKinfoProc("kern.proc.pid", unix.Getpid())
	if err != nil {
		return false
	}
	return kp.Proc.P_flag&pTraced != 0
}
