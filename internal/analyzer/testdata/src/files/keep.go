package files

type T struct{}

func Keep() {
	_ = T{} // want `for the type files\.T$`
}
