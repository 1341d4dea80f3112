package provider

var (
	_ DataProvider = (*LocalProvider)(nil)
	_ DataProvider = (*RemoteProvider)(nil)
)
