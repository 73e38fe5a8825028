package sources

import "fmt"

var errClickBlocked = fmt.Errorf("点击被拦截")

// fakeElement 测试用页面元素
type fakeElement struct {
	attrs    map[string]string
	text     string
	textErr  error
	children map[string][]*fakeElement
	clickErr error
	clicked  bool
	onClick  func() // 模拟点击触发的页面跳转
}

func (e *fakeElement) Attribute(name string) (string, error) {
	return e.attrs[name], nil
}

func (e *fakeElement) Text() (string, error) {
	return e.text, e.textErr
}

func (e *fakeElement) Click() error {
	e.clicked = true
	if e.clickErr != nil {
		return e.clickErr
	}
	if e.onClick != nil {
		e.onClick()
	}
	return nil
}

func (e *fakeElement) Element(selector string) (Element, error) {
	els := e.children[selector]
	if len(els) == 0 {
		return nil, fmt.Errorf("子元素未找到 [%s]", selector)
	}
	return els[0], nil
}

func (e *fakeElement) Elements(selector string) ([]Element, error) {
	els := e.children[selector]
	result := make([]Element, 0, len(els))
	for _, el := range els {
		result = append(result, el)
	}
	return result, nil
}

// fakePage 测试用页面,按选择器返回元素
type fakePage struct {
	elements map[string][]*fakeElement
}

// fakeSession 测试用浏览器会话
// pages按URL注册页面,导航到未注册的URL得到空白页。
type fakeSession struct {
	pages     map[string]*fakePage
	current   *fakePage
	navigated []string
	navErr    map[string]error
	closed    bool
}

func newFakeSession() *fakeSession {
	return &fakeSession{
		pages:  make(map[string]*fakePage),
		navErr: make(map[string]error),
	}
}

func (s *fakeSession) addPage(url string, elements map[string][]*fakeElement) *fakePage {
	page := &fakePage{elements: elements}
	s.pages[url] = page
	return page
}

func (s *fakeSession) Navigate(url string) error {
	s.navigated = append(s.navigated, url)
	if err := s.navErr[url]; err != nil {
		return err
	}
	if page, ok := s.pages[url]; ok {
		s.current = page
	} else {
		s.current = &fakePage{}
	}
	return nil
}

func (s *fakeSession) Settle() {}

func (s *fakeSession) WaitElement(selector string) (Element, error) {
	if s.current != nil {
		if els := s.current.elements[selector]; len(els) > 0 {
			return els[0], nil
		}
	}
	return nil, fmt.Errorf("元素未出现 [%s]", selector)
}

func (s *fakeSession) Elements(selector string) ([]Element, error) {
	if s.current == nil {
		return nil, nil
	}
	els := s.current.elements[selector]
	result := make([]Element, 0, len(els))
	for _, el := range els {
		result = append(result, el)
	}
	return result, nil
}

func (s *fakeSession) Close() {
	s.closed = true
}
