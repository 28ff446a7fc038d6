package conflict // want "You should either use included_namespaces or excluded_namespaces"

type T struct{}

func F() {
	_ = T{} // want `for the type conflict\.T$`
}
