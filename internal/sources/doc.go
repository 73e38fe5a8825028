// Package sources 提供按优先级排列的指南PDF数据源策略
//
// # 概述
//
// sources包实现了三个相互独立的检索策略,每个策略把一个指南标题解析为
// 候选结果(分类标签 + PDF链接)。解析失败降级为"未解析",不向上抛出故障。
//
// 策略优先级(由core.Resolver按序执行,命中即停):
//
//  1. PortalSearch      — EBM Portal专用指南门户
//  2. TripDatabaseSearch — Trip Database循证医学检索库(带标题校验)
//  3. WebSearch         — Google兜底检索(取前3条自然结果)
//
// # 浏览器会话
//
// 浏览器驱动被抽象为Session/Element能力接口(导航/有界等待/读取/点击),
// 生产实现基于go-rod,每个标题独占一个无头浏览器会话:
//
//	session, err := sources.NewRodSession(config)
//	if err != nil { /* 处理错误 */ }
//	defer session.Close()
//
//	candidate := sources.PortalSearch{}.Try(session, "Acute Stroke Guideline")
//
// # 提取启发式
//
// ExtractPMCPDF和ExtractWebpagePDF在已加载的页面上有界等待
// a[href$='.pdf']元素,并按来源类型补全站内相对链接:
//   - PMC页面: /pdf开头的链接以页面URL截断到"/PMC"段之前补全
//   - 普通网页: /开头的链接以去掉末尾斜杠的页面URL补全
//
// # 错误处理
//
//   - 元素等待超时: 策略降级为未解析,记录错误日志
//   - 标题不匹配(仅Trip Database): 放弃结果,宁缺毋滥
//   - 含login的链接: 不可抓取,直接跳过
//
// 注意: EBM Portal策略不校验结果标题而Trip Database策略校验,
// 这是刻意保留的不对称行为。
package sources
