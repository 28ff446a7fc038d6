package files

func Skip() {
	_ = T{}
}
