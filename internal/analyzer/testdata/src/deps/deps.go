package deps

import "bytes"

type Service struct{}

type Repo interface{}

type Box[T any] struct{ v T }

func New() *Service { return &Service{} }

func NewService(a int) *Service { return nil }

func NewServiceWith(a, b int) *Service { return nil } // want `The constructor of the type Service has 2 dependencies which is more than allowed \(1\)`

func newService(a int, b string, c ...int) Service { return Service{} } // want `type Service has 3 dependencies`

func NewRepo(int, string) Repo { return nil } // want `type Repo has 2 dependencies`

func NewBox[T any](v T, w T) *Box[T] { return nil } // want `type Box has 2 dependencies`

func Newton(a, b, c int) *Service { return nil }

func NewInt(a, b int) int { return 0 }

func NewBuffer(a, b int) *bytes.Buffer { return nil }

func (s *Service) NewChild(a, b int) *Service { return nil }
