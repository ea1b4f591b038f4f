package identity

type Service interface {
	Identify() Model
}

type ServiceProvider struct {
	node    string
	version string
	address string
	port    uint16
}

func NewService(node, version, address string, port uint16) Service {
	return &ServiceProvider{
		node:    node,
		version: version,
		address: address,
		port:    port,
	}
}

func (sp ServiceProvider) Identify() Model {
	return Model{
		Node:    sp.node,
		Version: sp.version,
		Address: sp.address,
		Port:    sp.port,
	}
}

type Model struct {
	Node    string `json:"node"`
	Version string `json:"version"`
	Address string `json:"address"`
	Port    uint16 `json:"port"`
}
