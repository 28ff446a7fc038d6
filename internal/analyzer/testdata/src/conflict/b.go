package conflict // want "You should either use included_namespaces or excluded_namespaces"

func G() {}
