package probe

func attached() bool {
	return Procfs{}.Attached()
}
